package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BenKalegin/clouddiagram-sub004/internal/presentation/graph"
	"github.com/BenKalegin/clouddiagram-sub004/internal/presentation/tui"
)

// Options contains the configuration shared by the commands.
type Options struct {
	ScriptPath string
	ConfigPath string
	JSON       bool
	Metrics    bool
	Watch      bool
	Debug      bool
	Out        io.Writer
	Err        io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) err() io.Writer {
	if o.Err == nil {
		return os.Stderr
	}
	return o.Err
}

// Run handles the 'run' command, replaying once or on every change in watch mode.
func Run(ctx context.Context, opts Options) error {
	if opts.Watch {
		return RunWatch(ctx, opts, nil)
	}
	return runOnce(opts)
}

func runOnce(opts Options) error {
	l, err := load(opts)
	if l == nil {
		return err
	}
	defer l.session.Close()
	if err != nil {
		// Still show what was built before the failing step.
		fmt.Fprintf(opts.err(), "Error: %v\n", err)
	}

	if opts.JSON {
		if werr := writeJSON(opts.out(), l); werr != nil {
			return werr
		}
	} else {
		writeSummary(opts.out(), l)
	}

	if l.metrics != nil {
		if werr := l.metrics.WriteText(opts.out()); werr != nil {
			return werr
		}
	}
	return err
}

// Graph prints the Mermaid flowchart of the document built by the script.
func Graph(opts Options) error {
	l, err := load(opts)
	if err != nil {
		return err
	}
	defer l.session.Close()

	overlay := &graph.Overlay{}
	for _, c := range l.session.Selection().Cells() {
		overlay.Selected = append(overlay.Selected, c.ID())
	}
	if root := l.session.View().CurrentRoot(); root != nil {
		overlay.CurrentRoot = root.ID()
	}
	fmt.Fprint(opts.out(), graph.GenerateMermaid(l.session.Model().Root(), overlay))
	return nil
}

// Inspect prints a markdown report of the session, rendered when tty is set.
func Inspect(opts Options, tty bool) error {
	l, err := load(opts)
	if err != nil {
		return err
	}
	defer l.session.Close()

	render, err := tui.NewRenderer(tty)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(tui.Report(l.session))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Fprint(opts.out(), out)
	return nil
}
