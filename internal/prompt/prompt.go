// Package prompt builds the instruction string handed to the language model
// as its system message. Pure string assembly — no I/O, no error paths.
package prompt

import (
	"fmt"
	"strings"

	"searchbrief/internal/model"
)

// template has two slots: the citation blocks and the image placeholder
// lines. Empty inputs leave the slots blank but keep every header, so the
// model always sees the same instruction shape.
const template = `You are a research assistant that writes thorough, well-sourced answers.

Use the following web search results as context. Refer to them inline using their [citation:x] markers.

%s

The following images were retrieved for the same query:

%s

Write a comprehensive answer of at least 300 words based on the context above. After the answer, add a section titled "Image Descriptions" that briefly describes each image and its relevance to the topic.`

// Build turns search snippets and image hits into the system prompt.
// Citation indices are 1-based and follow input order exactly; image lines
// are literal placeholders — the image content itself is never inspected.
// Deterministic given its inputs.
func Build(snippets []model.SnippetResult, images []model.ImageResult) string {
	citations := make([]string, 0, len(snippets))
	for i, s := range snippets {
		citations = append(citations, fmt.Sprintf("[citation:%d] %s", i+1, s.Snippet))
	}

	imageLines := make([]string, 0, len(images))
	for i := range images {
		imageLines = append(imageLines, fmt.Sprintf("Image %d: [Brief description and relevance to the topic]", i+1))
	}

	return fmt.Sprintf(template,
		strings.Join(citations, "\n\n"),
		strings.Join(imageLines, "\n"),
	)
}
