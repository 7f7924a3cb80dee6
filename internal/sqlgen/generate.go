// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sqlgen

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

const (
	// Table is the target table of every generated statement.
	Table = "pedagogy_sheets"

	// IllustrationDir is the storage subdirectory holding the exercise images.
	IllustrationDir = "Jeux enfant"

	// IllustrationPrefix is the image filename prefix shared with the page
	// image extractor.
	IllustrationPrefix = "fichePeda_jeux"
)

// Constant column values written into every statement.
const (
	sheetKind      = "image_file"
	sheetTheme     = "Jeux enfant"
	sheetStructure = "SAE"
	sheetURL       = ""
	sheetType      = "educational_game"
)

const header = "-- Insertion des fiches pédagogiques d'exercices\n" +
	"-- Table: " + Table + "\n"

const statementTemplate = `INSERT INTO ` + Table + ` (
    title,
    type,
    theme,
    starting_situation,
    description,
    game_goal,
    structure,
    evolution,
    remarks,
    success_criteria,
    skill_to_develop,
    illustration_image,
    url,
    sheet_type
) VALUES (
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s
)
ON CONFLICT (title) DO NOTHING;
`

// IllustrationPath returns the stored image path for exercise number num.
// The backslash separator is part of the stored value, not an OS path.
func IllustrationPath(num string) string {
	return IllustrationDir + `\` + IllustrationPrefix + "_" + num + ".png"
}

// Statement renders one INSERT for e. Required text fields render an absent
// label as '' and a JSON null as NULL; the variant, comment and observation
// fields render as NULL whenever their value is empty or falsy.
func Statement(e types.Exercise) string {
	num := lookup(e, types.FieldNumber)

	return fmt.Sprintf(statementTemplate,
		required(e, types.FieldTitle),
		Literal(sheetKind),
		Literal(sheetTheme),
		required(e, types.FieldDevice),
		required(e, types.FieldInstruction),
		required(e, types.FieldGoal),
		Literal(sheetStructure),
		nullable(e, types.FieldVariant),
		nullable(e, types.FieldComment),
		required(e, types.FieldSuccess),
		nullable(e, types.FieldObservation),
		Literal(IllustrationPath(num.text)),
		Literal(sheetURL),
		Literal(sheetType),
	)
}

// Generate returns the header comment followed by one statement per record,
// in input order.
func Generate(records []types.Exercise) string {
	parts := make([]string, 0, len(records)+1)
	parts = append(parts, header)
	for _, e := range records {
		parts = append(parts, Statement(e))
	}
	return strings.Join(parts, "\n")
}

func required(e types.Exercise, label string) string {
	f := lookup(e, label)
	if f.null {
		return null
	}
	return Literal(f.text)
}

func nullable(e types.Exercise, label string) string {
	f := lookup(e, label)
	if f.falsy {
		return null
	}
	return Literal(f.text)
}
