package http

import (
	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func toUserResponse(u domain.User) todosdk.UserResponse {
	return todosdk.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

func toTagResponse(t domain.Tag) todosdk.TagResponse {
	return todosdk.TagResponse{ID: t.ID, Name: t.Name}
}

func toTodoResponse(t domain.Todo) todosdk.TodoResponse {
	tags := make([]todosdk.TagResponse, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, toTagResponse(tag))
	}

	return todosdk.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoResponses(todos []domain.Todo) []todosdk.TodoResponse {
	out := make([]todosdk.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}

func toTokenResponse(pair *domain.TokenPair) todosdk.TokenResponse {
	return todosdk.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int(pair.ExpiresIn.Seconds()),
		RefreshExpiresIn: int(pair.RefreshExpiresIn.Seconds()),
	}
}
