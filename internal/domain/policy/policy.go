// Package policy concentra as decisões de acesso a conteúdo.
// As funções são puras: recebem o papel do ator, sua identidade e o estado
// do recurso, e devolvem permitir/negar. A mesma matriz vale para busca por
// id e por slug.
package policy

import (
	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// CanRead verifica se o ator pode ler o conteúdo.
// VIEWER enxerga apenas publicado; EDITOR enxerga publicado e o próprio
// conteúdo em qualquer status; ADMIN enxerga tudo.
func CanRead(role entities.Role, actorID string, content *entities.Content) bool {
	if role == entities.RoleAdmin {
		return true
	}

	if content.Status == entities.StatusPublished {
		return true
	}

	if role == entities.RoleEditor && content.AuthorID == actorID {
		return true
	}

	return false
}

// CanCreate verifica se o ator pode criar conteúdo
func CanCreate(role entities.Role) bool {
	return role.CanAuthor()
}

// CanMutate verifica se o ator pode atualizar ou deletar o conteúdo.
// EDITOR apenas o próprio; ADMIN qualquer; VIEWER nenhum.
func CanMutate(role entities.Role, actorID string, content *entities.Content) bool {
	switch role {
	case entities.RoleAdmin:
		return true
	case entities.RoleEditor:
		return content.AuthorID == actorID
	}
	return false
}

// ListScope devolve a restrição de visibilidade de uma listagem.
// VIEWER é sempre forçado a publicado, por cima de qualquer filtro do
// caller. EDITOR sem filtro explícito de status enxerga o próprio conteúdo
// em qualquer status mais o publicado de terceiros; com filtro explícito,
// a restrição own-or-published continua valendo, de modo que um filtro
// status=DRAFT devolve apenas os próprios rascunhos. ADMIN é irrestrito.
func ListScope(role entities.Role, actorID string) repositories.ListScope {
	switch role {
	case entities.RoleAdmin:
		return repositories.ListScope{}
	case entities.RoleEditor:
		return repositories.ListScope{OwnOrPublishedFor: actorID}
	default:
		return repositories.ListScope{PublishedOnly: true}
	}
}
