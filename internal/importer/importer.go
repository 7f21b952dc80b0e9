// Package importer ingests tabular phrase data (CSV or Excel) into the
// phrase store, with optional translation backfill for half-empty rows and
// per-folder deduplication against existing content.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/engstudy/internal/database"
	"github.com/example/engstudy/pkg/models"
)

// Translator fills in the missing half of a phrase pair. The production
// implementation calls the external translation service; tests use a fake.
type Translator interface {
	Translate(ctx context.Context, text string) (sourceText, targetText string, err error)
}

// ColumnMapping says which zero-based columns hold which fields. FolderCol
// is -1 when the dataset has no per-row folder column.
type ColumnMapping struct {
	SourceCol int `json:"source_col"`
	TargetCol int `json:"target_col"`
	FolderCol int `json:"folder_col"`
}

// Options are the import policy flags.
type Options struct {
	// Translate backfills a blank source or target field via the Translator.
	Translate bool `json:"translate"`
	// CreateFolders auto-creates folders referenced by rows at commit time.
	CreateFolders bool `json:"create_folders"`
	// Dedupe skips rows whose (target, source) pair already exists in the
	// destination folder.
	Dedupe bool `json:"dedupe"`
}

// Config is everything needed to turn raw rows into an import.
type Config struct {
	Mapping        ColumnMapping `json:"mapping"`
	DefaultFolders []string      `json:"default_folders"`
	Options        Options       `json:"options"`
}

// PreviewRow is one import candidate, resolved and checked but not yet
// written.
type PreviewRow struct {
	SourceText      string   `json:"source_text"`
	TargetText      string   `json:"target_text"`
	Folders         []string `json:"folders"`
	DuplicateIn     []string `json:"duplicate_in,omitempty"`
	TranslateFailed bool     `json:"translate_failed,omitempty"`
}

// Preview is the materialized, read-only result of the preview phase.
type Preview struct {
	Rows     []PreviewRow `json:"rows"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Result reports what the commit phase actually did.
type Result struct {
	Added             int      `json:"added"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	FoldersCreated    int      `json:"folders_created"`
	Errors            []string `json:"errors,omitempty"`
}

// Importer runs the two-phase bulk import.
type Importer struct {
	folders    *database.FolderRepository
	phrases    *database.PhraseRepository
	translator Translator
}

// New creates an importer. The translator may be nil, in which case the
// Translate option is ignored.
func New(folders *database.FolderRepository, phrases *database.PhraseRepository, translator Translator) *Importer {
	return &Importer{folders: folders, phrases: phrases, translator: translator}
}

// BuildPreview walks the rows and produces the import candidates. It reads
// the store for deduplication but never writes to it.
func (im *Importer) BuildPreview(ctx context.Context, rows [][]string, cfg Config) (*Preview, error) {
	if cfg.Mapping.FolderCol < 0 && len(cfg.DefaultFolders) == 0 {
		return nil, fmt.Errorf("no folder column mapped and no default folders selected")
	}

	existing, err := im.existingPairs(rows, cfg)
	if err != nil {
		return nil, err
	}

	preview := &Preview{}
	for rowNum, row := range rows {
		source := cell(row, cfg.Mapping.SourceCol)
		target := cell(row, cfg.Mapping.TargetCol)

		targets := cfg.DefaultFolders
		if cfg.Mapping.FolderCol >= 0 {
			if name := cell(row, cfg.Mapping.FolderCol); name != "" {
				targets = []string{name}
			}
		}
		if len(targets) == 0 {
			continue
		}

		translateFailed := false
		if cfg.Options.Translate && im.translator != nil && (source == "" || target == "") && (source != "" || target != "") {
			text := source
			if text == "" {
				text = target
			}
			trSource, trTarget, trErr := im.translator.Translate(ctx, text)
			if trErr != nil {
				// one bad row must not sink the batch
				translateFailed = true
				preview.Warnings = append(preview.Warnings,
					fmt.Sprintf("row %d: translation backfill failed: %v", rowNum+1, trErr))
			} else {
				// only ever fill the blank side
				if source == "" {
					source = strings.TrimSpace(trSource)
				}
				if target == "" {
					target = strings.TrimSpace(trTarget)
				}
			}
		}

		if source == "" && target == "" {
			continue
		}

		var duplicateIn []string
		if cfg.Options.Dedupe {
			for _, folder := range targets {
				if existing[folder][pairKey(source, target)] {
					duplicateIn = append(duplicateIn, folder)
				}
			}
		}

		preview.Rows = append(preview.Rows, PreviewRow{
			SourceText:      source,
			TargetText:      target,
			Folders:         targets,
			DuplicateIn:     duplicateIn,
			TranslateFailed: translateFailed,
		})
	}

	return preview, nil
}

// Commit writes a materialized preview into the store. Folders are created
// first when the policy allows; each (row, folder) pair is written on its
// own so one failure cannot abort the rest.
func (im *Importer) Commit(preview *Preview, cfg Config) (*Result, error) {
	result := &Result{}

	wanted := map[string]bool{}
	for _, row := range preview.Rows {
		for _, folder := range row.Folders {
			wanted[folder] = true
		}
	}

	known, err := im.folders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	knownSet := map[string]bool{}
	for _, name := range known {
		knownSet[name] = true
	}

	if cfg.Options.CreateFolders {
		for folder := range wanted {
			if knownSet[folder] {
				continue
			}
			created, err := im.folders.Create(folder)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("create folder %q: %v", folder, err))
				continue
			}
			if created {
				result.FoldersCreated++
			}
			knownSet[folder] = true
		}
	}

	for rowNum, row := range preview.Rows {
		dup := map[string]bool{}
		for _, folder := range row.DuplicateIn {
			dup[folder] = true
		}

		for _, folder := range row.Folders {
			if cfg.Options.Dedupe && dup[folder] {
				result.SkippedDuplicates++
				continue
			}
			if !knownSet[folder] {
				result.Errors = append(result.Errors,
					fmt.Sprintf("row %d: folder %q does not exist", rowNum+1, folder))
				continue
			}
			phrase := &models.Phrase{
				Folder:     folder,
				SourceText: row.SourceText,
				TargetText: row.TargetText,
			}
			if err := im.phrases.Create(phrase); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("row %d: add to %q: %v", rowNum+1, folder, err))
				continue
			}
			result.Added++
		}
	}

	return result, nil
}

// existingPairs loads, per folder the import can touch, the set of
// (target, source) pairs already in the store. Pairs are compared after
// trimming only; this is dedup, not grading.
func (im *Importer) existingPairs(rows [][]string, cfg Config) (map[string]map[string]bool, error) {
	if !cfg.Options.Dedupe {
		return map[string]map[string]bool{}, nil
	}

	touched := map[string]bool{}
	if cfg.Mapping.FolderCol >= 0 {
		for _, row := range rows {
			if name := cell(row, cfg.Mapping.FolderCol); name != "" {
				touched[name] = true
			}
		}
	}
	for _, name := range cfg.DefaultFolders {
		touched[name] = true
	}

	pairs := map[string]map[string]bool{}
	for folder := range touched {
		phrases, err := im.phrases.GetByFolder(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to load phrases for %q: %w", folder, err)
		}
		set := map[string]bool{}
		for _, p := range phrases {
			set[pairKey(strings.TrimSpace(p.SourceText), strings.TrimSpace(p.TargetText))] = true
		}
		pairs[folder] = set
	}
	return pairs, nil
}

func pairKey(source, target string) string {
	return target + "\x00" + source
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
