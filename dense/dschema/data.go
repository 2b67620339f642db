// Package dschema bridges JSON schema documents into the dfield model. Every
// field document goes through the dfield constructors, so malformed documents
// surface the same construction errors as schemas built in code.
package dschema

import (
	"fmt"
)

type (
	Document struct {
		Fields []FieldDoc `json:"fields"`
	}
	FieldDoc struct {
		Name          string                `json:"name"`
		Kind          string                `json:"kind"`
		Min           *float64              `json:"min,omitempty"`
		Max           *float64              `json:"max,omitempty"`
		Precision     *float64              `json:"precision,omitempty"`
		Options       []string              `json:"options,omitempty"`
		MinLength     *int                  `json:"min_length,omitempty"`
		MaxLength     *int                  `json:"max_length,omitempty"`
		Item          *FieldDoc             `json:"item,omitempty"`
		Discriminator *FieldDoc             `json:"discriminator,omitempty"`
		Variants      map[string][]FieldDoc `json:"variants,omitempty"`
		Inner         *FieldDoc             `json:"inner,omitempty"`
		Default       any                   `json:"default,omitempty"`
		Fields        []FieldDoc            `json:"fields,omitempty"`
		Target        string                `json:"target,omitempty"`
	}
	MissingParameterError struct {
		FieldName string
		Parameter string
	}
	UnknownKindError struct {
		FieldName string
		Kind      string
	}
)

func (r MissingParameterError) Error() string {
	return fmt.Sprintf(
		`field document "%s" misses parameter "%s"`,
		r.FieldName, r.Parameter,
	)
}

func (r UnknownKindError) Error() string {
	return fmt.Sprintf(
		`field document "%s" has unknown kind "%s"`,
		r.FieldName, r.Kind,
	)
}
