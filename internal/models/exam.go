package models

import "time"

// Option is one of the four answer choices of a generated question. The JSON
// tags match the wire format the generation provider is instructed to emit,
// which is also the format returned to clients.
type Option struct {
	ID   int    `json:"id"`
	Text string `json:"texto"`
}

// Question is a single multiple-choice question as produced by the provider
// and annotated with the request's exam, subject and difficulty.
type Question struct {
	ID            string   `json:"id"`
	Exam          string   `json:"vestibular"`
	Subject       string   `json:"materia"`
	Difficulty    string   `json:"dificuldade"`
	Statement     string   `json:"enunciado"`
	Options       []Option `json:"opcoes"`
	CorrectAnswer int      `json:"respostaCorreta"`
}

// GenerationRecord is one entry of the append-only history ledger. It holds
// request metadata only, never the generated question bodies.
type GenerationRecord struct {
	ID            string
	Exam          string
	Subject       string
	Difficulty    string
	QuestionCount int
	CreatedAt     time.Time
}
