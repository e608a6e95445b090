package openai

import (
	"fmt"
	"strings"
)

const enhancePromptTemplate = `Based on the following Discord search results for the query "%s", provide a concise summary of the key information found:

Search Results:
%s

Please provide:
1. A brief summary of the main topics discussed
2. Key points or answers related to the query
3. Any notable patterns or themes

Keep the response under 500 words and focus on the most relevant information.`

const explainPromptTemplate = `You are a helpful assistant that explains search queries in a clear and concise manner.

Please analyze and explain the following search query:
"%s"

Provide an explanation that includes:
1. Answer to the provided users query
2. Key terms and their significance
3. Potential search intent or purpose
4. Any suggestions for improving the query if applicable

Keep your response informative but concise.`

const summarizePromptTemplate = "Please provide a concise summary of the following content:\n\n%s"

// validationPrompt is the cheapest request that proves a key works.
const validationPrompt = "Hello"

// buildEnhancePrompt numbers each result and embeds them with the query.
func buildEnhancePrompt(query string, contents []string) string {
	items := make([]string, 0, len(contents))
	for i, c := range contents {
		items = append(items, fmt.Sprintf("%d. %s", i+1, clipText(c, maxContentRunes)))
	}
	return fmt.Sprintf(enhancePromptTemplate, compactText(query), strings.Join(items, "\n\n"))
}

func buildExplainPrompt(query string) string {
	return fmt.Sprintf(explainPromptTemplate, compactText(query))
}

func buildSummarizePrompt(content string) string {
	return fmt.Sprintf(summarizePromptTemplate, strings.TrimSpace(content))
}
