package validate_test

import (
	"testing"

	"github.com/rpggio/academe/internal/domain/apperr"
	"github.com/rpggio/academe/internal/validate"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string `json:"title" validate:"notblank"`
	Status   string `json:"status" validate:"omitempty,oneof=open completed"`
	Progress int    `json:"progress" validate:"min=0,max=100"`
	LeaderID string `json:"leader_id" validate:"required"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validate.Struct(sample{Title: "Alpha", Progress: 40, LeaderID: "s1"}))

	err := validate.Struct(sample{Title: "  ", Status: "archived", Progress: 101})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	var fields validate.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "title")
	require.Contains(t, fields, "status")
	require.Contains(t, fields, "progress")
	require.Contains(t, fields, "leader_id")
	require.Equal(t, "title must not be blank", fields["title"])
	require.Equal(t, "leader_id is required", fields["leader_id"])
}

func TestVar(t *testing.T) {
	require.NoError(t, validate.Var("status", "todo", "oneof=todo review"))
	err := validate.Var("status", "done", "oneof=todo review")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestText(t *testing.T) {
	require.Equal(t, "", validate.Text(""))
	require.Equal(t, "R&D notes", validate.Text("  R&D notes "))
	require.Equal(t, "Generics with <T> params", validate.Text("Generics with <T> params"))
	require.Equal(t, "line one\nline two", validate.Text("line one\r\nline two"))
	require.Equal(t, []string{"ML", "Data"}, validate.Texts([]string{"ML", " ", " Data"}))
	require.Nil(t, validate.Texts(nil))
}

func TestPlainText(t *testing.T) {
	for _, s := range []string{"", "Hello", "R&D notes", `Tom's "robot"`, "5 < 6 & 7 > 3", "line one\r\nline two"} {
		require.True(t, validate.PlainText(s), s)
	}
	for _, s := range []string{
		"<b>Hello</b>",
		"<b></b>",
		"Generics with <T> params",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"<!-- note -->",
	} {
		require.False(t, validate.PlainText(s), s)
	}
}

type note struct {
	Title string   `json:"title" validate:"notblank,plaintext"`
	Body  *string  `json:"body" validate:"omitempty,plaintext"`
	Tags  []string `json:"tags" validate:"dive,plaintext"`
}

func TestStruct_PlainText(t *testing.T) {
	body := "plain"
	require.NoError(t, validate.Struct(note{Title: "Hello", Body: &body, Tags: []string{"ok"}}))
	require.NoError(t, validate.Struct(note{Title: "Hello"}))

	markup := "<i>x</i>"
	err := validate.Struct(note{Title: "<b></b>", Body: &markup, Tags: []string{"&lt;b&gt;"}})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	var fields validate.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Equal(t, "title must not contain markup", fields["title"])
	require.Contains(t, fields, "body")
	require.Contains(t, fields, "tags[0]")
}
