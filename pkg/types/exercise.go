// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Field labels recognized in an exercise record. The labels are the French
// headings of the source pedagogy sheets and are matched verbatim.
const (
	FieldNumber      = "N° de l'exercice"
	FieldTitle       = "Titre"
	FieldDevice      = "Dispositif"
	FieldGoal        = "But"
	FieldInstruction = "Consignes"
	FieldSuccess     = "Critère de réussite"
	FieldVariant     = "Variante"
	FieldObservation = "Observation"
	FieldComment     = "Commentaire"
)

// Exercise is one record of the input list: a field label mapped to its raw
// JSON value. A label that is missing from the map is absent; a label mapped
// to the JSON literal null is present but null.
type Exercise map[string]json.RawMessage
