package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/merchco/counterpos/internal/models"
)

// TimeLayout is the timestamp format of the text log headers.
const TimeLayout = "2006-01-02 15:04:05"

// Ledger is the append-only transaction store. Every recorded
// transaction is written twice: as one structured JSON line in
// ledger.jsonl (the queryable source) and as a human-readable block in
// log.txt or relog.txt. The text formats are a compatibility contract
// with existing log files and are reproduced byte-for-byte.
type Ledger struct {
	// LedgerPath is the structured record file (one JSON object per line).
	LedgerPath string
	// LogPath receives sale, gift, and exchange blocks.
	LogPath string
	// RelogPath receives return blocks.
	RelogPath string
}

// NewLedger creates a Ledger rooted in dir.
func NewLedger(dir string) *Ledger {
	return &Ledger{
		LedgerPath: filepath.Join(dir, "ledger.jsonl"),
		LogPath:    filepath.Join(dir, "log.txt"),
		RelogPath:  filepath.Join(dir, "relog.txt"),
	}
}

// Append stores rec in the structured ledger and appends the derived
// text block to the matching log file.
func (l *Ledger) Append(ctx context.Context, rec models.Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := appendFile(l.LedgerPath, append(line, '\n')); err != nil {
		return err
	}
	path := l.LogPath
	if rec.Kind == models.KindReturn {
		path = l.RelogPath
	}
	return appendFile(path, []byte(renderBlock(rec)))
}

// renderBlock formats rec exactly as the text logs have always been
// written: a bracketed timestamp header plus one " - name size xqty"
// line per item, quantities of returned goods prefixed "x-".
func renderBlock(rec models.Record) string {
	ts := rec.Time.Format(TimeLayout)
	var b strings.Builder
	switch rec.Kind {
	case models.KindSale:
		fmt.Fprintf(&b, "[%s] 【銷售】%s 身分:%s 通路:%s 單號:%s 金額:$%d\n",
			ts, rec.Staff, rec.Identity, rec.Channel, rec.OrderID, rec.Amount)
		for _, item := range rec.Items {
			fmt.Fprintf(&b, " - %s %s x%d\n", item.Name, item.Size, item.Qty)
		}
	case models.KindGift:
		fmt.Fprintf(&b, "[%s] 【贈與】%s 贈與人:%s\n", ts, rec.Staff, rec.Giver)
		for _, item := range rec.Items {
			fmt.Fprintf(&b, " - %s %s x%d\n", item.Name, item.Size, item.Qty)
		}
	case models.KindReturn:
		fmt.Fprintf(&b, "[%s] 【退/換貨】%s 身分:%s 通路:%s 退還金額：$-%d\n",
			ts, rec.Staff, rec.Identity, rec.Channel, rec.Amount)
		b.WriteString("退回：\n")
		for _, item := range rec.Items {
			fmt.Fprintf(&b, " - %s %s x-%d\n", item.Name, item.Size, item.Qty)
		}
	case models.KindExchange:
		fmt.Fprintf(&b, "[%s] 【換貨】%s 身分:%s 通路:%s 單號:%s 差額：$%d\n",
			ts, rec.Staff, rec.Identity, rec.Channel, rec.OrderID, rec.Amount)
		b.WriteString("退回：\n")
		for _, item := range rec.OldItems {
			fmt.Fprintf(&b, " - %s %s x-%d\n", item.Name, item.Size, item.Qty)
		}
		b.WriteString("換出：\n")
		for _, item := range rec.NewItems {
			fmt.Fprintf(&b, " - %s %s x%d\n", item.Name, item.Size, item.Qty)
		}
	}
	return b.String()
}

// LatestReturns returns up to n return blocks, most recent first. It
// reads the structured ledger; when no ledger file exists yet it falls
// back to parsing a legacy relog.txt. Absent files mean no returns, not
// an error.
func (l *Ledger) LatestReturns(ctx context.Context, n int) ([]models.ReturnBlock, error) {
	f, err := os.Open(l.LedgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return l.parseLegacyRelog(n)
		}
		return nil, err
	}
	defer f.Close()

	var blocks []models.ReturnBlock
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec models.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("corrupt ledger line: %w", err)
		}
		if rec.Kind != models.KindReturn {
			continue
		}
		blocks = append(blocks, models.ReturnBlock{
			Time:  rec.Time.Format(TimeLayout),
			Items: rec.Items,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lastReversed(blocks, n), nil
}

// parseLegacyRelog recovers return blocks from a relog.txt written
// before the structured ledger existed. Item lines are positional:
// " - <name> <size> x-<qty>". Lines that do not match are skipped.
func (l *Ledger) parseLegacyRelog(n int) ([]models.ReturnBlock, error) {
	f, err := os.Open(l.RelogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ReturnBlock{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var blocks []models.ReturnBlock
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "[") && strings.Contains(line, "【退/換貨】"):
			end := strings.Index(line, "]")
			if end < 0 {
				continue
			}
			blocks = append(blocks, models.ReturnBlock{Time: line[1:end], Items: []models.LineItem{}})
		case strings.HasPrefix(line, " - ") && len(blocks) > 0:
			parts := strings.Fields(line)
			if len(parts) < 4 {
				continue
			}
			qty, err := strconv.Atoi(strings.TrimPrefix(parts[3], "x-"))
			if err != nil {
				continue
			}
			cur := &blocks[len(blocks)-1]
			cur.Items = append(cur.Items, models.LineItem{Name: parts[1], Size: parts[2], Qty: qty})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lastReversed(blocks, n), nil
}

// lastReversed returns the last n blocks, newest first.
func lastReversed(blocks []models.ReturnBlock, n int) []models.ReturnBlock {
	out := make([]models.ReturnBlock, 0, n)
	for i := len(blocks) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, blocks[i])
	}
	return out
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
