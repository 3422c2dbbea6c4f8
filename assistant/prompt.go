package assistant

import (
	"strings"

	"github.com/viant/gitinsight/outline"
)

// ChatPrompt builds the system prompt of a chat request
func ChatPrompt(request *ChatRequest) string {
	builder := strings.Builder{}
	builder.WriteString("You are an AI assistant that helps analyze GitHub repositories. ")
	if repo := request.RepoData; repo != nil && repo.FullName != "" {
		builder.WriteString(`You're currently analyzing the repository "` + repo.FullName + `"`)
		if repo.Description != "" {
			builder.WriteString(` which is described as: "` + repo.Description + `"`)
		}
		builder.WriteString(". ")
	}
	if request.Context != nil && request.Context.SelectedNode != nil {
		node := request.Context.SelectedNode
		if node.Type == "file" {
			language := node.Language
			if language == "" {
				language = "unknown"
			}
			builder.WriteString("The user has selected a " + language + ` file named "` + node.ID + `". `)
			if node.Outdated {
				builder.WriteString("This file contains outdated dependencies. ")
			}
		} else {
			builder.WriteString(`The user has selected a folder named "` + node.ID + `". `)
		}
	}
	builder.WriteString("\nUser question: " + request.Message + "\n\n")
	builder.WriteString("Please provide a helpful, technical, yet easy-to-understand response.\n")
	builder.WriteString("Be friendly and polite; if the user asks to build something from scratch, guide them step by step.")
	return builder.String()
}

// ExplainPrompt builds the prompt of a file explanation, symbols are optional
func ExplainPrompt(request *ExplainRequest, symbols []*outline.Symbol) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert code reviewer and technical educator. ")
	if request.Detailed {
		builder.WriteString(`Please provide a detailed line-by-line explanation of the following code file: "` + request.FilePath + "\"\n\n")
		builder.WriteString("Break down each section of the code, explain what it does, and highlight any important patterns or best practices. ")
		builder.WriteString("Focus on clarity and educational value. Format your response with line numbers when relevant.\n\n")
	} else {
		builder.WriteString(`Please summarize the following code file: "` + request.FilePath + "\"\n\n")
		builder.WriteString("Provide a concise summary of what this file does, its main functionality, and any notable features. ")
		builder.WriteString("Highlight key patterns, potential issues, and best practices. Format your response with bullet points where appropriate.\n\n")
	}
	if len(symbols) > 0 {
		builder.WriteString("Top level declarations:\n")
		builder.WriteString(outline.Format(symbols))
		builder.WriteString("\n")
	}
	builder.WriteString("Here's the code:\n")
	builder.WriteString(request.FileContent)
	return builder.String()
}
