// Package assemble orchestrates the decode, pairing, extraction, title
// and ordering stages into render-ready book groups.
package assemble

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/isg32/bookpiler/internal/booktree"
	"github.com/isg32/bookpiler/internal/config"
	"github.com/isg32/bookpiler/internal/decode"
	"github.com/isg32/bookpiler/internal/extract"
	"github.com/isg32/bookpiler/internal/order"
	"github.com/isg32/bookpiler/internal/pairing"
	"github.com/isg32/bookpiler/internal/title"
)

// Assembler runs the full pipeline over a directory tree.
type Assembler struct {
	cfg    config.Config
	policy pairing.Policy
	log    *slog.Logger
}

// Result is one completed run: the ordered groups plus everything that was
// skipped or degraded along the way.
type Result struct {
	Groups      []booktree.BookGroup
	Diagnostics []booktree.Diagnostic
}

func New(cfg config.Config, log *slog.Logger) *Assembler {
	policy, err := pairing.ParsePolicy(cfg.PairPolicy)
	if err != nil {
		// Validate() rejects unknown policies at startup; keep the
		// zero-value default if a caller skipped validation.
		log.Warn("unknown pair policy, using either", "policy", cfg.PairPolicy)
		policy = pairing.RequireEither
	}
	return &Assembler{cfg: cfg, policy: policy, log: log}
}

// Run assembles every book group under root. Per-file and per-chapter
// failures are recorded as diagnostics and never abort the run; only a
// missing or unreadable root is fatal.
func (a *Assembler) Run(root string) (*Result, error) {
	if root == "" {
		root = a.cfg.DataDir
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	res := &Result{}
	index := pairing.New()

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			a.log.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !a.cfg.ExtAllowed(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		rec, err := decode.Decode(path)
		if err != nil {
			a.log.Warn("skipping file", "path", path, "error", err)
			res.Diagnostics = append(res.Diagnostics, booktree.Diagnostic{
				Kind:    booktree.DiagDecodeFailure,
				Path:    path,
				Message: err.Error(),
			})
			return nil
		}
		index.Ingest(rec)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	if n := index.Overwrites(); n > 0 {
		a.log.Warn("duplicate chapter files overwritten", "count", n)
	}

	pairs := index.DrainComplete(a.policy)
	for _, left := range index.Remaining() {
		a.log.Warn("incomplete chapter pair skipped", "key", left.Key.String())
		res.Diagnostics = append(res.Diagnostics, booktree.Diagnostic{
			Kind:    booktree.DiagIncompletePair,
			Key:     left.Key.String(),
			Message: fmt.Sprintf("chapter has no usable pair under policy %s", a.policy),
		})
	}

	grouped := make(map[booktree.GroupKey][]booktree.ChapterRecord)
	for _, pair := range pairs {
		rec := a.resolve(pair, res)
		gk := pair.Key.GroupKey()
		grouped[gk] = append(grouped[gk], rec)
	}

	for key, records := range grouped {
		sortChapters(records)
		res.Groups = append(res.Groups, booktree.BookGroup{Key: key, Chapters: records})
	}
	sort.Slice(res.Groups, func(i, j int) bool {
		return order.NaturalLess(res.Groups[i].Key.Label(), res.Groups[j].Key.Label())
	})

	return res, nil
}

// resolve turns one drained pair into a ChapterRecord, degrading a failed
// extraction to empty text.
func (a *Assembler) resolve(pair booktree.ChapterPair, res *Result) booktree.ChapterRecord {
	explanation := a.textFor(pair.ExplanationPath, pair.Key, res)
	questions := a.textFor(pair.QuestionsPath, pair.Key, res)

	return booktree.ChapterRecord{
		ClassID:         pair.Key.ClassID,
		Subject:         pair.Key.Subject,
		ChapterKey:      pair.Key.ChapterKey,
		Title:           title.Resolve(pair.Key.ChapterKey, explanation, questions),
		ExplanationText: explanation,
		QuestionsText:   questions,
	}
}

func (a *Assembler) textFor(path string, key booktree.PairKey, res *Result) string {
	if path == "" {
		return ""
	}
	text, err := extract.FromFile(path, extract.Options{
		PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		a.log.Warn("text extraction failed", "path", path, "key", key.String(), "error", err)
		res.Diagnostics = append(res.Diagnostics, booktree.Diagnostic{
			Kind:    booktree.DiagExtractError,
			Path:    path,
			Key:     key.String(),
			Message: err.Error(),
		})
		return ""
	}
	return text
}

// sortChapters orders one group's records. The tiered title key is primary,
// ties broken by the raw chapter key. A group where no chapter yielded any
// text falls back to natural ordering over the chapter keys.
func sortChapters(records []booktree.ChapterRecord) {
	anyText := false
	for _, r := range records {
		if r.ExplanationText != "" || r.QuestionsText != "" {
			anyText = true
			break
		}
	}
	if !anyText {
		sort.SliceStable(records, func(i, j int) bool {
			return order.NaturalLess(records[i].ChapterKey, records[j].ChapterKey)
		})
		return
	}

	type keyed struct {
		rec booktree.ChapterRecord
		key order.SortKey
	}
	ks := make([]keyed, len(records))
	for i, r := range records {
		ks[i] = keyed{rec: r, key: order.Compute(r.Title)}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if c := order.Compare(ks[i].key, ks[j].key); c != 0 {
			return c < 0
		}
		return ks[i].rec.ChapterKey < ks[j].rec.ChapterKey
	})
	for i := range ks {
		records[i] = ks[i].rec
	}
}
