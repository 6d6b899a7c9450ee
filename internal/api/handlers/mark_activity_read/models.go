package mark_activity_read

// MarkReadRequest HTTP request model
type MarkReadRequest struct {
	Key string `json:"key"` // Ключ записи ленты, например "booking:42"
}
