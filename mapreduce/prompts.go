package mapreduce

import (
	"fmt"

	"github.com/destiner/carpe"
)

func paragraphs(r carpe.ParagraphRange) string {
	return fmt.Sprintf("%d-%d paragraphs", r.Min, r.Max)
}

func summaryInstruction(plan carpe.ChunkPlan) string {
	return fmt.Sprintf("Summarize this article in %s. Focus on the main points and key insights.",
		paragraphs(plan.Paragraphs))
}

func summaryChunkInstruction(chunk carpe.Chunk) string {
	return fmt.Sprintf("Summarize this section of an article (part %d of %d) in 1-2 short paragraphs. Focus on the key points:",
		chunk.Part(), chunk.Total)
}

func summaryReduceInstruction(plan carpe.ChunkPlan) string {
	return fmt.Sprintf("These are summaries of different sections of a long article, in order. "+
		"Create a cohesive summary in %s that captures the overall main points and key insights:",
		paragraphs(plan.Paragraphs))
}

const answerInstruction = "Answer the question using only the article below. " +
	"Do not use outside knowledge. If the article does not contain the answer, say that the article does not answer the question."

func answerChunkInstruction(chunk carpe.Chunk) string {
	return fmt.Sprintf("This is part %d of %d of a long article. "+
		"Answer the question using only this part. "+
		"If this part contains nothing relevant to the question, reply with exactly: %s",
		chunk.Part(), chunk.Total, carpe.NoRelevantInformation)
}

const answerReduceInstruction = "These are answers to the same question drawn from different sections of a long article, in order. " +
	"Combine them into one coherent final answer. Ignore sections that report \"" + carpe.NoRelevantInformation + "\". " +
	"If every section reports that, state that the article does not answer the question. Do not invent an answer."

func questionText(question, body string) string {
	return "Question: " + question + "\n\n" + body
}
