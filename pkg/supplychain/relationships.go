package supplychain

import (
	"context"
	"encoding/json"
	"fmt"

	"graphview-service/internal/model"

	"go.uber.org/zap"
)

// RelationshipRequest carries the endpoints plus the kind-specific
// property variant. Properties marshal flattened alongside the ids,
// matching the backend contract.
type RelationshipRequest struct {
	SourceID   string
	TargetID   string
	SourceType model.EntityType
	TargetType model.EntityType
	Properties model.RelationshipProps
}

func (r RelationshipRequest) MarshalJSON() ([]byte, error) {
	payload := map[string]any{
		"sourceId":   r.SourceID,
		"targetId":   r.TargetID,
		"sourceType": r.SourceType,
		"targetType": r.TargetType,
	}
	if r.Properties != nil {
		raw, err := json.Marshal(r.Properties)
		if err != nil {
			return nil, err
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			payload[k] = v
		}
	}
	return json.Marshal(payload)
}

// RelationshipResult is the backend's confirmation of a created
// relationship. RelationshipType is authoritative when non-empty.
type RelationshipResult struct {
	Message          string         `json:"message"`
	SourceID         string         `json:"sourceId"`
	TargetID         string         `json:"targetId"`
	RelationshipType string         `json:"relationshipType"`
	Properties       map[string]any `json:"properties"`
}

// relationshipPath picks the backend route for a pair; relationship
// creation is spread across per-resource endpoints.
func relationshipPath(source, target model.EntityType) (string, error) {
	switch source {
	case model.EntityProduct:
		if target == model.EntityProduct {
			return "/product/relationshipProducts", nil
		}
		return "/product/relationship", nil
	case model.EntityProvider:
		return "/providers/relationshipProvider", nil
	case model.EntityBranchOffice:
		return "/branchOffice/relationship", nil
	case model.EntityInvoice:
		return "/invoices/relationship", nil
	}
	return "", fmt.Errorf("no relationship endpoint for source type %q", source)
}

// CreateRelationship posts a relationship between two existing
// entities and returns the backend-confirmed discriminant and
// properties.
func (c *Client) CreateRelationship(ctx context.Context, req RelationshipRequest) (*RelationshipResult, error) {
	path, err := relationshipPath(req.SourceType, req.TargetType)
	if err != nil {
		return nil, &CreateError{Op: "create relationship", Message: err.Error(), Err: err}
	}
	var res RelationshipResult
	if err := c.postJSON(ctx, path, req, &res); err != nil {
		c.logger.Error("relationship create failed",
			zap.String("source_id", req.SourceID),
			zap.String("target_id", req.TargetID),
			zap.String("source_type", string(req.SourceType)),
			zap.String("target_type", string(req.TargetType)),
			zap.Error(err))
		return nil, c.createErr("create relationship", "could not create relationship", err)
	}
	return &res, nil
}
