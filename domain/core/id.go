package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AssessmentID ID
	DimensionID  ID
	TestName     ID
)

// String conversions for domain IDs
func (id AssessmentID) String() string { return ID(id).String() }
func (id DimensionID) String() string  { return ID(id).String() }
func (n TestName) String() string      { return ID(n).String() }

// NewAssessmentID creates a fresh assessment identifier
func NewAssessmentID() AssessmentID {
	return AssessmentID(NewID())
}

// ParseDimensionID parses a string into DimensionID
func ParseDimensionID(s string) (DimensionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dimension ID cannot be empty")
	}
	return DimensionID(s), nil
}

// ParseTestName parses a string into TestName
func ParseTestName(s string) (TestName, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("test name cannot be empty")
	}
	return TestName(s), nil
}
