package editor

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnotes/internal/service"
	"gnotes/internal/testutil"
)

func newSession(t *testing.T) (*testutil.FakeService, *Session, string, *[]service.Note) {
	t.Helper()
	fake := testutil.NewFakeService()
	token := fake.IssueToken("alice")
	var saved []service.Note
	s := New(fake, func(_ context.Context, n service.Note) { saved = append(saved, n) }, nil)
	return fake, s, token, &saved
}

func TestSubmit_Create(t *testing.T) {
	fake, s, token, saved := newSession(t)

	s.OpenForCreate()
	require.NoError(t, s.UpdateField(FieldTitle, "  Groceries  "))
	require.NoError(t, s.UpdateField(FieldContent, "milk"))

	note, err := s.Submit(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "Groceries", note.Title)
	assert.False(t, s.State().Open())
	require.Len(t, *saved, 1)
	assert.Equal(t, note, (*saved)[0])

	creates := fake.CallsTo("create")
	require.Len(t, creates, 1)
	assert.Equal(t, service.Draft{Title: "Groceries", Content: "milk"}, creates[0].Draft)
}

func TestSubmit_Edit(t *testing.T) {
	fake, s, token, saved := newSession(t)
	id := fake.AddNote("alice", "Old", "body")

	s.OpenForEdit(service.Note{ID: id, Title: "Old", Content: "body"})
	st := s.State()
	assert.Equal(t, Editing, st.Mode)
	assert.Equal(t, "Old", st.Title)

	require.NoError(t, s.UpdateField(FieldTitle, "New"))
	note, err := s.Submit(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, id, note.ID)
	assert.Equal(t, "New", note.Title)
	assert.Len(t, *saved, 1)

	updates := fake.CallsTo("update")
	require.Len(t, updates, 1)
	assert.Equal(t, id, updates[0].ID)
	assert.Equal(t, "body", updates[0].Draft.Content)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", "Title is required"},
		{"whitespace", "   \t", "Title is required"},
		{"too long", strings.Repeat("a", 256), "Title must be at most 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, s, token, saved := newSession(t)
			s.OpenForCreate()
			require.NoError(t, s.UpdateField(FieldTitle, tt.title))

			_, err := s.Submit(context.Background(), token)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, FieldTitle, vErr.Field)
			assert.Equal(t, tt.want, vErr.Message)

			st := s.State()
			assert.True(t, st.Open())
			assert.Equal(t, SubmitIdle, st.Status)
			assert.Equal(t, tt.want, st.ValidationErr)
			assert.Empty(t, st.Err)
			assert.Empty(t, fake.Calls())
			assert.Empty(t, *saved)
		})
	}
}

func TestValidate_MaxLengthCountsRunes(t *testing.T) {
	assert.NoError(t, Validate(strings.Repeat("é", service.MaxTitleLength)))
	assert.Error(t, Validate(strings.Repeat("é", service.MaxTitleLength+1)))
}

func TestSubmit_BackendFieldError(t *testing.T) {
	fake, s, token, saved := newSession(t)
	fake.CreateNoteErr = &service.APIError{
		Status: http.StatusBadRequest,
		Fields: map[string][]string{"title": {"This field is required."}},
	}

	s.OpenForCreate()
	require.NoError(t, s.UpdateField(FieldTitle, "Groceries"))
	require.NoError(t, s.UpdateField(FieldContent, "milk"))

	_, err := s.Submit(context.Background(), token)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "Failed to save note: This field is required.", saveErr.Message)

	st := s.State()
	assert.True(t, st.Open())
	assert.Equal(t, SubmitFailed, st.Status)
	assert.Equal(t, "Failed to save note: This field is required.", st.Err)
	assert.Equal(t, "Groceries", st.Title)
	assert.Equal(t, "milk", st.Content)
	assert.Empty(t, *saved)
}

func TestSubmit_FailureReasons(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"detail", &service.APIError{Status: http.StatusForbidden, Detail: "Not allowed."}, "Failed to save note: Not allowed."},
		{"bare status", &service.APIError{Status: http.StatusInternalServerError}, "Failed to save note: Unknown error"},
		{"transport", &service.TransportError{Op: "create note", Err: errors.New("connection refused")}, "Failed to save note: Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, s, token, _ := newSession(t)
			fake.CreateNoteErr = tt.err
			s.OpenForCreate()
			require.NoError(t, s.UpdateField(FieldTitle, "x"))

			_, err := s.Submit(context.Background(), token)

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	fake, s, token, saved := newSession(t)
	fake.CreateNoteErr = &service.APIError{Status: http.StatusInternalServerError}

	s.OpenForCreate()
	require.NoError(t, s.UpdateField(FieldTitle, "Groceries"))
	_, err := s.Submit(context.Background(), token)
	require.Error(t, err)

	fake.CreateNoteErr = nil
	_, err = s.Submit(context.Background(), token)

	require.NoError(t, err)
	assert.Len(t, *saved, 1)
	assert.Empty(t, s.State().Err)
}

func TestSubmit_NotOpen(t *testing.T) {
	fake, s, token, _ := newSession(t)

	_, err := s.Submit(context.Background(), token)

	assert.ErrorIs(t, err, ErrNotOpen)
	assert.Empty(t, fake.Calls())
}

func TestUpdateField_RevalidatesTitle(t *testing.T) {
	_, s, token, _ := newSession(t)
	s.OpenForCreate()

	require.NoError(t, s.UpdateField(FieldTitle, "   "))
	assert.Equal(t, "Title is required", s.State().ValidationErr)

	_, err := s.Submit(context.Background(), token)
	require.Error(t, err)

	require.NoError(t, s.UpdateField(FieldTitle, "Groceries"))
	assert.Empty(t, s.State().ValidationErr)

	require.NoError(t, s.UpdateField(FieldTitle, strings.Repeat("a", service.MaxTitleLength+1)))
	assert.Equal(t, "Title must be at most 255 characters", s.State().ValidationErr)
}

func TestUpdateField_ContentLeavesValidation(t *testing.T) {
	_, s, _, _ := newSession(t)
	s.OpenForCreate()

	require.NoError(t, s.UpdateField(FieldTitle, ""))
	require.NoError(t, s.UpdateField(FieldContent, "body"))

	assert.Equal(t, "Title is required", s.State().ValidationErr)
}

func TestUpdateField_Unknown(t *testing.T) {
	_, s, _, _ := newSession(t)
	s.OpenForCreate()

	assert.Error(t, s.UpdateField("tags", "x"))
}

func TestClose(t *testing.T) {
	_, s, _, _ := newSession(t)
	s.OpenForCreate()
	require.NoError(t, s.UpdateField(FieldTitle, "draft"))

	s.Close()

	assert.Equal(t, State{}, s.State())
}
