package git

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/github/go-pipe/pipe"

	"github.com/reposurvey/reposurvey/counts"
)

// walkBatchFormat is the `cat-file --batch=<fmt>` header format used
// by `WalkIter`. It asks for the on-disk (compressed, possibly
// delta-encoded) size in addition to the logical size, since the
// per-object metadata probe needs both.
const walkBatchFormat = "%(objectname) %(objecttype) %(objectsize) %(objectsize:disk)"

// WalkRecord is one object surfaced by a combined rev-list/cat-file
// walk: its header (including on-disk size) plus its full body.
type WalkRecord struct {
	OID        OID
	ObjectType ObjectType
	ObjectSize counts.Count32
	OnDiskSize counts.Count32
	Data       []byte
	Missing    bool
}

// WalkIter iterates over the reachable objects seeded via `AddRoot`,
// in the order reported by `git rev-list --objects`, with each
// object's header and body available from `Next`.
type WalkIter struct {
	ctx   context.Context
	p     *pipe.Pipeline
	oidCh chan OID
	recCh chan WalkRecord
}

// NewWalkIter returns a `WalkIter` for `repo`. Seed OIDs are fed via
// `AddRoot`; the caller must call `Close` exactly once, after which
// `Next` continues to drain any already-buffered records.
func (repo *Repository) NewWalkIter(ctx context.Context) (*WalkIter, error) {
	iter := WalkIter{
		ctx:   ctx,
		p:     pipe.New(),
		oidCh: make(chan OID),
		recCh: make(chan WalkRecord),
	}

	hashHexSize := repo.HashSize() * 2

	iter.p.Add(
		// Read seed OIDs from `iter.oidCh` and write them to `git
		// rev-list --stdin`:
		pipe.Function(
			"request-roots",
			func(ctx context.Context, _ pipe.Env, _ io.Reader, stdout io.Writer) error {
				out := bufio.NewWriter(stdout)

				for {
					select {
					case oid, ok := <-iter.oidCh:
						if !ok {
							return out.Flush()
						}
						if _, err := fmt.Fprintln(out, oid.String()); err != nil {
							return fmt.Errorf("writing root to 'git rev-list': %w", err)
						}
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			},
		),

		// Walk starting at the seed OIDs, outputting the OID of every
		// reachable commit, tree, and blob (trees/blobs of a commit
		// consecutively within that commit's frame). Objects missing
		// from the object store are listed with a '?' prefix instead
		// of aborting the walk:
		pipe.CommandStage(
			"git-rev-list",
			repo.GitCommand("rev-list", "--objects", "--stdin", "--in-commit-order", "--missing=print"),
		),

		// Strip off any '?' marker and trailing path information and
		// forward bare OIDs to `git cat-file`, which reports the
		// missing ones as such:
		pipe.LinewiseFunction(
			"copy-oids",
			func(_ context.Context, _ pipe.Env, line []byte, stdout *bufio.Writer) error {
				if len(line) > 0 && line[0] == '?' {
					line = line[1:]
				}
				if len(line) < hashHexSize {
					return fmt.Errorf("line too short: '%s'", line)
				}
				if _, err := stdout.Write(line[:hashHexSize]); err != nil {
					return fmt.Errorf("writing OID to 'git cat-file': %w", err)
				}
				return stdout.WriteByte('\n')
			},
		),

		// Emit a header (with on-disk size) followed by the full
		// object body, for each requested OID:
		pipe.CommandStage(
			"git-cat-file",
			repo.GitCommand("cat-file", "--batch="+walkBatchFormat, "--buffer"),
		),

		// Parse the headers and bodies and shove them into `recCh`:
		pipe.Function(
			"object-reader",
			func(ctx context.Context, _ pipe.Env, stdin io.Reader, _ io.Writer) error {
				defer close(iter.recCh)

				f := bufio.NewReader(stdin)

				for {
					header, err := f.ReadString('\n')
					if err != nil {
						if err == io.EOF {
							return nil
						}
						return fmt.Errorf("reading from 'git cat-file': %w", err)
					}

					rec, bodyLen, err := parseWalkHeader(header)
					if err != nil {
						return fmt.Errorf("parsing output of 'git cat-file': %w", err)
					}

					if !rec.Missing {
						data := make([]byte, bodyLen+1)
						if _, err := io.ReadFull(f, data); err != nil {
							return fmt.Errorf(
								"reading object data from 'git cat-file' for %s: %w",
								rec.OID, err,
							)
						}
						rec.Data = data[:bodyLen]
					}

					select {
					case iter.recCh <- rec:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			},
		),
	)

	if err := iter.p.Start(ctx); err != nil {
		return nil, err
	}

	return &iter, nil
}

// parseWalkHeader parses one `cat-file --batch=<walkBatchFormat>`
// header line (including its trailing LF) and returns the decoded
// record along with the logical body length to read next (0 for a
// missing object).
func parseWalkHeader(header string) (WalkRecord, int, error) {
	header = header[:len(header)-1]
	words := strings.Split(header, " ")

	if words[len(words)-1] == "missing" {
		oid, err := NewOID(words[0])
		if err != nil {
			return WalkRecord{}, 0, err
		}
		return WalkRecord{OID: oid, Missing: true}, 0, nil
	}

	if len(words) != 4 {
		return WalkRecord{}, 0, fmt.Errorf("malformed 'cat-file' header: %q", header)
	}

	oid, err := NewOID(words[0])
	if err != nil {
		return WalkRecord{}, 0, err
	}

	size, err := strconv.ParseUint(words[2], 10, 0)
	if err != nil {
		return WalkRecord{}, 0, err
	}

	diskSize, err := strconv.ParseUint(words[3], 10, 0)
	if err != nil {
		return WalkRecord{}, 0, err
	}

	return WalkRecord{
		OID:        oid,
		ObjectType: ObjectType(words[1]),
		ObjectSize: counts.NewCount32(size),
		OnDiskSize: counts.NewCount32(diskSize),
	}, int(size), nil
}

// AddRoot adds another seed OID to be included in the walk.
func (iter *WalkIter) AddRoot(oid OID) error {
	select {
	case iter.oidCh <- oid:
		return nil
	case <-iter.ctx.Done():
		return iter.ctx.Err()
	}
}

// Close signals that no more roots will be added.
func (iter *WalkIter) Close() {
	close(iter.oidCh)
}

// Next returns the next object record, or a `false` boolean value
// when the walk is exhausted.
func (iter *WalkIter) Next() (WalkRecord, bool, error) {
	rec, ok := <-iter.recCh
	if !ok {
		return WalkRecord{}, false, iter.p.Wait()
	}
	return rec, true, nil
}
