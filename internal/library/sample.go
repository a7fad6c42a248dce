package library

// SampleFileName is the fragment file written into an empty category directory.
const SampleFileName = "experience.tex"

// SampleContent returns generic placeholder LaTeX content for a role category.
// It is written into empty category directories so a run never proceeds with
// zero fragments.
func SampleContent(category string) string {
	_ = category // content is generic for now; kept for per-role samples later

	return `\documentclass{article}
\begin{document}

\section*{Experience}

\begin{itemize}
    \item Developed and deployed machine learning models for production systems
    \item Collaborated with cross-functional teams to deliver AI-powered solutions
    \item Optimized algorithms for performance and scalability
    \item Conducted research and implemented state-of-the-art techniques
    \item Mentored junior team members and led technical discussions
\end{itemize}

\section*{Projects}

\begin{itemize}
    \item Built end-to-end data pipelines for large-scale data processing
    \item Implemented deep learning models using PyTorch and TensorFlow
    \item Designed and developed RESTful APIs for model serving
    \item Created automated testing and CI/CD pipelines
    \item Published research findings in peer-reviewed conferences
\end{itemize}

\end{document}
`
}
