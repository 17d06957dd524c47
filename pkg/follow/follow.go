// Package follow tails a JSON-lines file and yields each complete JSON
// document as it is appended.
package follow

import (
	"io"
	stdlog "log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Document is one JSON line read from the followed file.
type Document struct {
	// Line counts lines read since following began, starting at 1.
	Line  int
	Text  string
	Value jsonvalue.Value
}

// Options configure a Follower.
type Options struct {
	// FromStart replays the existing content before following new lines.
	FromStart bool
	// Poll uses stat polling instead of inotify.
	Poll bool
}

// Follower reads lines from a file as they are written.
type Follower struct {
	tail    *tail.Tail
	docs    chan Document
	skipped atomic.Int64
	logger  *logrus.Entry

	stopOnce sync.Once
	done     chan struct{}
}

// Start begins tailing path. Lines that are blank or not valid JSON are skipped.
func Start(path string, opts Options) (*Follower, error) {
	whence := io.SeekEnd
	if opts.FromStart {
		whence = io.SeekStart
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Poll:      opts.Poll,
		Location:  &tail.SeekInfo{Offset: 0, Whence: whence},
		Logger:    stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to follow file").WithDetail("path", path)
	}

	f := &Follower{
		tail:   t,
		docs:   make(chan Document, 64),
		logger: logging.NewLogger("jsonview-follow"),
		done:   make(chan struct{}),
	}
	go f.run()
	return f, nil
}

// Documents delivers parsed documents. It is closed once the follower stops.
func (f *Follower) Documents() <-chan Document {
	return f.docs
}

// Skipped reports how many lines were dropped because they were not JSON.
func (f *Follower) Skipped() int64 {
	return f.skipped.Load()
}

func (f *Follower) run() {
	defer close(f.docs)

	lineNo := 0
	for {
		select {
		case line, ok := <-f.tail.Lines:
			if !ok {
				return
			}
			lineNo++
			if line.Err != nil {
				f.logger.WithError(line.Err).Warn("Tail error")
				continue
			}
			doc, ok := f.parse(lineNo, line.Text)
			if !ok {
				continue
			}
			select {
			case f.docs <- doc:
			case <-f.done:
				return
			}
		case <-f.done:
			return
		}
	}
}

func (f *Follower) parse(lineNo int, text string) (Document, bool) {
	text = strings.TrimRight(text, "\r")
	if strings.TrimSpace(text) == "" {
		return Document{}, false
	}

	value, err := jsonvalue.ParseString(text)
	if err != nil {
		f.skipped.Add(1)
		f.logger.WithField("line", lineNo).Debugf("Skipping non-JSON line: %v", err)
		return Document{}, false
	}
	return Document{Line: lineNo, Text: text, Value: value}, true
}

// Stop ends tailing and closes Documents.
func (f *Follower) Stop() error {
	var err error
	f.stopOnce.Do(func() {
		close(f.done)
		err = f.tail.Stop()
		f.tail.Cleanup()
	})
	return err
}
