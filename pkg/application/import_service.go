package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/storycast/pkg/domain"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

// backlogSchemaJSON validates story exports from editor frontends before
// they reach the backlog. Points may be a number or "?".
const backlogSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text"],
    "properties": {
      "id": { "type": "string" },
      "number": { "type": "integer", "minimum": 0 },
      "text": { "type": "string", "minLength": 1 },
      "points": {
        "anyOf": [
          { "type": "integer", "enum": [0, 1, 2, 3, 5, 8, 13, 21] },
          { "type": "string", "enum": ["?", "1", "2", "3", "5", "8", "13", "21"] }
        ]
      },
      "priority": { "type": "string" },
      "status": {
        "type": "string",
        "enum": ["on_hold", "ready_for_dev", "in_progress", "blocked", "completed", ""]
      },
      "assignee": { "type": "string" },
      "sprint_id": { "type": "string" },
      "depends_on": { "type": "array", "items": { "type": "string" } }
    }
  }
}`

var backlogSchemaLoader = gojsonschema.NewStringLoader(backlogSchemaJSON)

// ImportService ingests backlog exports into the workspace.
type ImportService struct {
	repo domain.WorkspaceRepository
}

// NewImportService creates a new import service.
func NewImportService(repo domain.WorkspaceRepository) *ImportService {
	return &ImportService{repo: repo}
}

// ImportBacklog validates raw story JSON against the backlog schema, fills
// in missing identity fields, and replaces the stored backlog. Returns the
// imported stories.
func (s *ImportService) ImportBacklog(data []byte) ([]backlog.Story, error) {
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(backlogSchemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate backlog: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("backlog does not match schema: %s", strings.Join(issues, "; "))
	}

	var stories []backlog.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("parse backlog: %w", err)
	}

	nextNumber := 1
	for i := range stories {
		if stories[i].Number >= nextNumber {
			nextNumber = stories[i].Number + 1
		}
	}
	for i := range stories {
		if stories[i].ID == "" {
			stories[i].ID = uuid.New().String()
		}
		if stories[i].Number == 0 {
			stories[i].Number = nextNumber
			nextNumber++
		}
		if stories[i].Status == "" {
			stories[i].Status = backlog.StatusOnHold
		}
	}

	if err := s.repo.SaveBacklog(stories); err != nil {
		return nil, err
	}
	return stories, nil
}
