package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/stretchr/testify/require"
)

// NewSession creates a session with sequential ids ("c2", "c3", ...) that is
// closed when the test ends. Later options override the id generator.
func NewSession(t *testing.T, opts ...clouddiagram.Option) *clouddiagram.Session {
	t.Helper()
	opts = append([]clouddiagram.Option{clouddiagram.WithIDGenerator(model.SequentialIDs("c"))}, opts...)
	s := clouddiagram.New(opts...)
	t.Cleanup(s.Close)
	return s
}

// Vertex inserts a vertex whose value is its id.
// It fails the test immediately on error.
func Vertex(t *testing.T, s *clouddiagram.Session, parent *model.Cell, id string, x, y, w, h float64) *model.Cell {
	t.Helper()
	c, err := s.InsertVertex(parent, id, id, domain.NewGeometry(x, y, w, h), "")
	require.NoError(t, err, "Failed to insert vertex %q", id)
	return c
}

// Edge inserts an unlabelled edge in the default layer.
func Edge(t *testing.T, s *clouddiagram.Session, id string, source, target *model.Cell) *model.Cell {
	t.Helper()
	e, err := s.InsertEdge(nil, id, nil, source, target, "")
	require.NoError(t, err, "Failed to insert edge %q", id)
	return e
}

// WriteFile writes content to name inside a temporary directory and returns
// the absolute path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}
