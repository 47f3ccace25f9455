package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/internal/presentation/tui"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	s := clouddiagram.New()
	defer s.Close()
	a, err := s.InsertVertex(nil, "a", "Client|Web", domain.NewGeometry(10, 20, 30, 40), "")
	require.NoError(t, err)
	b, err := s.InsertVertex(nil, "b", nil, domain.NewGeometry(100, 20, 30, 40), "")
	require.NoError(t, err)
	_, err = s.InsertEdge(nil, "ab", nil, a, b, "")
	require.NoError(t, err)
	s.Selection().SetCells(b)

	md := tui.Report(s)
	assert.Contains(t, md, "- **Cells:** 5")
	assert.Contains(t, md, "- **History:** 4 of 100 edits, cursor at 4")
	assert.Contains(t, md, "- `b`\n")
	assert.Contains(t, md, "| `a` | vertex | `1` | Client\\|Web | 10,20 30x40 | 1 edges |")
	assert.Contains(t, md, "| `ab` | edge | `1` |  |")
	assert.Contains(t, md, "a → b")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.False(t, strings.Contains(buf.String(), "\x1b["), "no colours without a terminal")
}

func TestNewRenderer_PlainWithoutTTY(t *testing.T) {
	render, err := tui.NewRenderer(false)
	require.NoError(t, err)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}
