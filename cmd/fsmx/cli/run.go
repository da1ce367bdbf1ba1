package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/internal/extensibility"
	"github.com/comalice/fsmx/internal/primitives"
	"github.com/comalice/fsmx/internal/production"
	"github.com/comalice/fsmx/loader"
)

// RunCmd returns the command that drives a machine from stdin lines.
func RunCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Drive a machine with events read from stdin",
		Long: `Each input line is an event name, optionally followed by a JSON payload:

  coin
  select 2
  select {"item": "tea"}

The resulting state is printed after every event.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loader.LoadFile(args[0], loader.RequireVersion(cli.Config.StrictVersion))
			if err != nil {
				return err
			}
			inits, err := readInitializers(cmd)
			if err != nil {
				return err
			}
			return cli.run(cmd.Context(), spec, inits)
		},
	}
	return cmd
}

// printer writes one line per transition or rejection.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) Transitioned(rec core.TransitionRecord) {
	p.printf("%s: %s -> %s\n", rec.Event, rec.From, rec.To)
}

func (p *printer) Rejected(rec core.RejectionRecord) {
	p.printf("%s: invalid in %s\n", rec.Event, rec.State)
}

// undeclared carries an input event name that is not part of the machine's event set.
type undeclared string

// lineDispatcher reports undeclared names in input order, between real transits.
type lineDispatcher struct {
	m   *core.SyncMachine
	out *printer
}

func (d lineDispatcher) Transit(evt primitives.Event) error {
	name, ok := evt.Payload.(undeclared)
	if !ok {
		return d.m.Transit(evt)
	}
	state := d.m.CurrentState().Name()
	d.out.printf("%s: invalid in %s\n", name, state)
	return &core.InvalidEventError{
		MachineID: d.m.ID(),
		State:     state,
		Event:     string(name),
		Type:      -1,
		Reason:    "event is not declared",
	}
}

func (cli *CLI) run(ctx context.Context, spec primitives.Specification, inits primitives.Initializers) error {
	out := &printer{out: cli.Out}
	metrics := production.NewMetrics(prometheus.NewRegistry())

	m, err := core.NewSync(spec, inits,
		core.WithLogger(cli.Logger),
		core.WithObserver(out),
		core.WithObserver(metrics),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan primitives.Event)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(cli.In)
		for scanner.Scan() {
			evt, err := parseLine(m, scanner.Text())
			if err != nil {
				out.printf("%v\n", err)
				continue
			}
			if evt == nil {
				continue
			}
			select {
			case events <- *evt:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			cli.Logger.Errorw("read events", "error", err)
		}
	}()

	pump := extensibility.NewPump(lineDispatcher{m: m, out: out}, cli.Logger)
	if err := pump.Run(ctx, extensibility.NewChannelEventSource(events)); err != nil {
		return err
	}

	state := m.CurrentState()
	final := ""
	if state.IsFinal() {
		final = " (final)"
	}
	out.printf("state: %s%s, %d transitions, %d invalid events\n",
		state.Name(), final, pump.Dispatched(), pump.Rejected())
	return nil
}

// parseLine turns "EVENT [json payload]" into an event. Blank lines and lines
// starting with '#' yield nil. An undeclared name yields an event carrying it.
func parseLine(m *core.SyncMachine, line string) (*primitives.Event, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	name, rest, _ := strings.Cut(line, " ")
	var payload any
	if rest = strings.TrimSpace(rest); rest != "" {
		if err := json.Unmarshal([]byte(rest), &payload); err != nil {
			return nil, errors.Wrapf(err, "%s: payload", name)
		}
	}
	evt, err := m.Event(name, payload)
	if core.IsInvalidEvent(err) {
		return &primitives.Event{Type: -1, Payload: undeclared(name)}, nil
	}
	if err != nil {
		return nil, err
	}
	return &evt, nil
}

func readInitializers(cmd *cobra.Command) (primitives.Initializers, error) {
	path, err := cmd.Flags().GetString("initializers")
	if err != nil || path == "" {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read initializers")
	}
	var inits primitives.Initializers
	if err := yaml.Unmarshal(data, &inits); err != nil {
		return nil, errors.Wrapf(err, "decode initializers %s", path)
	}
	return inits, nil
}
