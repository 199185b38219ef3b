package object

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidCommit is returned when a commit record is missing a required
// header field or is otherwise malformed.
var ErrInvalidCommit = errors.New("invalid commit")

// noParent is the on-disk sentinel for a root commit.
const noParent = "none"

// Commit is a single record in the history chain. Parent is empty for the
// root commit. Metadata holds free-form headers; their serialization order
// carries no meaning.
type Commit struct {
	Parent    Hash
	Timestamp int64
	Author    string
	Metadata  map[string]string
	Message   string
}

// MarshalCommit serializes a Commit:
//
//	parent: H          ("none" for a root commit)
//	timestamp: T
//	author: A
//	key: value         (zero or more metadata headers)
//
//	message
//
// The message is always written with a trailing newline.
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer

	parent := string(c.Parent)
	if parent == "" {
		parent = noParent
	}
	fmt.Fprintf(&buf, "parent: %s\n", parent)
	fmt.Fprintf(&buf, "timestamp: %d\n", c.Timestamp)
	fmt.Fprintf(&buf, "author: %s\n", c.Author)
	for _, k := range sortedKeys(c.Metadata) {
		fmt.Fprintf(&buf, "%s: %s\n", k, c.Metadata[k])
	}
	buf.WriteByte('\n')

	buf.WriteString(c.Message)
	if !strings.HasSuffix(c.Message, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form. Header lines run
// until the first blank line; parent, timestamp, and author are recognized,
// and any other "key: value" line lands in Metadata. Everything after the
// header block, blank lines included, is the message.
func UnmarshalCommit(data []byte) (*Commit, error) {
	lines := strings.Split(string(data), "\n")
	// A trailing newline produces one empty split artifact; drop it.
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(string(data), "\n") {
		lines = lines[:len(lines)-1]
	}

	c := &Commit{Metadata: make(map[string]string)}
	sawTimestamp := false
	sawAuthor := false

	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}

		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: malformed header line %q", ErrInvalidCommit, line)
		}
		switch key {
		case "parent":
			if val != noParent {
				c.Parent = Hash(val)
			}
		case "timestamp":
			ts, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp %q", ErrInvalidCommit, val)
			}
			c.Timestamp = ts
			sawTimestamp = true
		case "author":
			c.Author = val
			sawAuthor = true
		default:
			c.Metadata[key] = val
		}
	}

	if !sawTimestamp {
		return nil, fmt.Errorf("%w: missing timestamp header", ErrInvalidCommit)
	}
	if !sawAuthor {
		return nil, fmt.Errorf("%w: missing author header", ErrInvalidCommit)
	}

	var msg strings.Builder
	for ; i < len(lines); i++ {
		msg.WriteString(lines[i])
		msg.WriteByte('\n')
	}
	c.Message = msg.String()

	return c, nil
}

// SigningPayload returns the canonical bytes a commit signature covers: the
// serialized commit with any existing signature header removed.
func SigningPayload(c *Commit) []byte {
	stripped := *c
	if len(c.Metadata) > 0 {
		stripped.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			if k == "signature" {
				continue
			}
			stripped.Metadata[k] = v
		}
	}
	return MarshalCommit(&stripped)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
