package handler

import (
	"connectly/backend/internal/chathub"
	"connectly/backend/internal/mailer"
	"connectly/backend/internal/storage"
	"connectly/backend/internal/token"
)

// Handler тримає залежності всіх HTTP-ендпоїнтів.
type Handler struct {
	Storage storage.Storage
	Tokens  *token.Manager
	Mailer  mailer.Mailer
	Hub     chathub.Broadcaster
}

func NewHandler(s storage.Storage, tokens *token.Manager, m mailer.Mailer, hub chathub.Broadcaster) *Handler {
	return &Handler{
		Storage: s,
		Tokens:  tokens,
		Mailer:  m,
		Hub:     hub,
	}
}
