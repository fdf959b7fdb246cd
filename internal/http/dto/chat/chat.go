package chat

type SendMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse es el contrato que consume el cliente de polling:
// sender por username, contenido y hora corta para render directo, más
// sent_at completo para usar como cursor del próximo poll.
type MessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // HH:MM
	SentAt    string `json:"sent_at"`   // RFC3339Nano
}

type ThreadResponse struct {
	Messages []MessageResponse `json:"messages"`
}
