// Package logger implements a per-team in-memory log buffer for scrape runs.
//
// Detail lines accumulate in a buffer while one team's depth chart is being
// fetched and parsed. On failure the buffer is replayed ahead of the final
// error line so the log tells the whole story; on success the buffer is
// dropped and a single short line is written instead.
//
// Thread safety comes from a dedicated logger goroutine fed by a command
// channel; there are no mutexes.
package logger

import (
	"bytes"
	"log"
	"strings"
	"time"
)

// --- command types ----------------------------------------------------------

type action int

const (
	actBegin action = iota
	actAppend
	actSuccess
	actFlushErr
)

type cmd struct {
	act     action
	team    string
	message string    // for Append
	rows    int       // for Success
	err     error     // for FlushErr
	when    time.Time // timestamp, in case output ever needs sorting
}

// --- public entry points (they only send to the channel) --------------------

var ch = make(chan cmd, 128) // buffered so a burst of appends never stalls the scrape

// Begin starts buffering detail lines for the team.
func Begin(team string) { ch <- cmd{act: actBegin, team: team, when: time.Now()} }

// Append adds one detail line to the team's buffer. Without a prior Begin
// the line is written straight through.
func Append(team, msg string) {
	ch <- cmd{act: actAppend, team: team, message: msg, when: time.Now()}
}

// Success discards the buffer and writes a single summary line.
func Success(team string, rows int) {
	ch <- cmd{act: actSuccess, team: team, rows: rows, when: time.Now()}
}

// FlushError replays the buffered lines followed by the final error.
func FlushError(team string, err error) {
	ch <- cmd{act: actFlushErr, team: team, err: err, when: time.Now()}
}

// --- initialization: start the goroutine ------------------------------------

func init() { go runloop() }

// --- private implementation -------------------------------------------------

func runloop() {
	buffers := make(map[string]*bytes.Buffer)

	for c := range ch {
		switch c.act {
		case actBegin:
			buffers[c.team] = &bytes.Buffer{}

		case actAppend:
			if b := buffers[c.team]; b != nil {
				_, _ = b.WriteString(c.message + "\n")
			} else {
				log.Print(c.message) // no buffer, write straight through
			}

		case actSuccess:
			log.Printf("[%-4s][DepthChart] ✔ %d starters", c.team, c.rows)
			delete(buffers, c.team)

		case actFlushErr:
			if b := buffers[c.team]; b != nil {
				lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
				for _, ln := range lines {
					log.Print(ln)
				}
				delete(buffers, c.team)
			}
			log.Printf("[%-4s][ERROR] %v", c.team, c.err)
		}
	}
}
