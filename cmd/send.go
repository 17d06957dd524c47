package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/bridge"
)

// NewSendCmd creates the command that acts as a host for a listening viewer.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [file|-]",
		Short: "Send a document to a viewer started with --listen",
		Long: `Connects to a running 'jsonview view --listen' and loads a document into it,
or clears it with --clear. With --wait the command stays connected and prints
the viewer's messages (clipboard requests and notices) until the duration
elapses or the viewer disconnects.

Examples:
  jsonview send data.json --addr 127.0.0.1:7007
  curl -s https://api.github.com/repos/golang/go | jsonview send
  jsonview send --clear
  jsonview send data.json --wait 1m`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSend,
	}

	cmd.Flags().String("addr", "", "Viewer address (default from bridge.listen)")
	cmd.Flags().Bool("clear", false, "Clear the viewer instead of loading a document")
	cmd.Flags().Duration("wait", 0, "Print viewer messages for this long after sending")

	return cmd
}

// outboundRow is one viewer message as the send command prints it.
type outboundRow struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func describeOutbound(msg bridge.Outbound) outboundRow {
	switch m := msg.(type) {
	case bridge.RequestCopyToClipboard:
		return outboundRow{Type: bridge.TypeCopyToClipboard, Text: m.Text}
	case bridge.NotifyInfo:
		return outboundRow{Type: bridge.TypeShowInfo, Text: m.Message}
	case bridge.NotifyError:
		return outboundRow{Type: bridge.TypeShowError, Text: m.Message}
	}
	return outboundRow{Type: fmt.Sprintf("%T", msg)}
}

func runSend(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	addr := cfg.Bridge.Listen
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}
	if addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no viewer address: pass --addr or set bridge.listen")
	}

	clearView, _ := cmd.Flags().GetBool("clear")
	var msg bridge.Inbound = bridge.ClearDocument{}
	if !clearView {
		text, _, err := readInput(cmd, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		if err := requireText(text); err != nil {
			return err
		}
		msg = bridge.LoadDocument{Text: text}
	}

	wait, _ := cmd.Flags().GetDuration("wait")
	ctx, cancel := context.WithTimeout(cmd.Context(), wait+10*time.Second)
	defer cancel()

	url := bridge.URL(addr)
	client, err := bridge.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Send(msg); err != nil {
		return err
	}
	logger.WithField("url", url).Debug("Message sent")
	done := "sent document to "
	if clearView {
		done = "cleared viewer at "
	}
	logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).Success(done + url)

	if wait <= 0 {
		return nil
	}
	return receiveFor(cmd, client, wait)
}

// receiveFor prints viewer messages until d elapses or the connection drops.
func receiveFor(cmd *cobra.Command, client *bridge.Client, d time.Duration) error {
	jsonOut := cli.GetOptions(cmd).JSONOutput
	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
	received := make(chan bridge.Outbound)
	failed := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			msg, err := client.Receive()
			if err != nil {
				failed <- err
				return
			}
			select {
			case received <- msg:
			case <-done:
				return
			}
		}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return nil
		case <-cmd.Context().Done():
			return nil
		case err := <-failed:
			if errors.Is(err, errors.ErrCodeInvalidMessage) {
				return err
			}
			// The viewer closed the connection.
			return nil
		case msg := <-received:
			if jsonOut {
				if err := printJSON(cmd, describeOutbound(msg)); err != nil {
					return err
				}
				continue
			}
			switch m := msg.(type) {
			case bridge.NotifyInfo:
				pretty.InfoPretty(m.Message)
			case bridge.NotifyError:
				pretty.ErrorPretty(m.Message, nil)
			case bridge.RequestCopyToClipboard:
				pretty.Field("clipboard", m.Text)
			}
		}
	}
}
