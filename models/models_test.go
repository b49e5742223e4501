package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelsHaveCorrectObjectNames(t *testing.T) {
	post := Post{Text: "Тестовый пост для проверки длины"}
	group := Group{Title: "Тестовая группа"}

	require.Equal(t, "Тестовый пост д", post.String())
	require.Equal(t, "Тестовая группа", group.String())
}

func TestShortPostStringIsWholeText(t *testing.T) {
	require.Equal(t, "short", Post{Text: "short"}.String())
}

func TestUserFullName(t *testing.T) {
	require.Equal(t, "Ivan Petrov", User{Username: "ivan", FirstName: "Ivan", LastName: "Petrov"}.FullName())
	require.Equal(t, "Ivan", User{Username: "ivan", FirstName: "Ivan"}.FullName())
	require.Equal(t, "ivan", User{Username: "ivan"}.FullName())
}
