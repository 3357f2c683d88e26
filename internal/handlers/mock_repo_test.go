package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/links"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMock = errors.New("mock error")

// assertStatus checks that err is a huma error with the given HTTP status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, status, statusErr.GetStatus())
}

// mockRepo is a test double for links.Repository that can be configured to
// return errors.
type mockRepo struct {
	insertErr        error
	findByCodeErr    error
	findByCodeResult *links.Link
}

func (m *mockRepo) FindByShortCode(_ context.Context, _ string) (*links.Link, error) {
	if m.findByCodeErr != nil {
		return nil, m.findByCodeErr
	}

	return m.findByCodeResult, nil
}

func (m *mockRepo) FindByID(_ context.Context, _ int64) (*links.Link, error) {
	return nil, links.ErrNotFound
}

func (m *mockRepo) FindAllByOwner(_ context.Context, _ string) ([]links.Link, error) {
	return nil, nil
}

func (m *mockRepo) Insert(_ context.Context, _ links.NewLink) (*links.Link, error) {
	return nil, m.insertErr
}

func (m *mockRepo) UpdateByID(_ context.Context, _ int64, _, _, _ string) (*links.Link, error) {
	return nil, links.ErrNotFound
}

func (m *mockRepo) DeleteByID(_ context.Context, _ int64, _ string) (bool, error) {
	return false, nil
}
