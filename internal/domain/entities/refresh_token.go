package entities

import "time"

// RefreshToken representa um refresh token persistido.
// Uma linha existe por token em aberto; a linha é removida no momento em que
// o token é rotacionado (uso único) ou no logout. O ExpiresAt persistido é
// autoritativo para revogação, independente do exp interno do JWT.
type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired verifica se o registro persistido já venceu
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
