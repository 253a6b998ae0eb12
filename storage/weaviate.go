package storage

import (
	"context"
	"fmt"
	"net/http"

	"brieftube/model"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	className = "VideoSummary"
)

// Weaviate indexes persisted summaries for semantic search. Best effort, a
// run does not fail when indexing does.
type Weaviate struct {
	client *weaviate.Client
}

func NewWeaviate(host, weaviateApiKey, openaiApiKey string) (*Weaviate, error) {
	config := weaviate.Config{
		Scheme:     "https",
		Host:       host,
		AuthConfig: auth.ApiKey{Value: weaviateApiKey},
		Headers: map[string]string{
			"X-OpenAI-Api-Key": openaiApiKey,
		},
	}

	c, err := weaviate.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Weaviate{client: c}, nil
}

func (w *Weaviate) ResetSchema() error {

	// delete old
	if err := w.client.Schema().ClassDeleter().WithClassName(className).Do(context.Background()); err != nil {
		// Weaviate will return a 400 if the class does not exist, so this is allowed, only return an error if it's not a 400
		if status, ok := err.(*fault.WeaviateClientError); ok && status.StatusCode != http.StatusBadRequest {
			return err
		}
	}

	// create new
	classObj := &models.Class{
		Class:      className,
		Vectorizer: "text2vec-openai",
		ModuleConfig: map[string]any{
			"text2vec-openai": map[string]any{
				"model":        "ada",
				"modelVersion": "002",
				"type":         "text",
			},
		},
	}

	return w.client.Schema().ClassCreator().WithClass(classObj).Do(context.Background())
}

func (w *Weaviate) Save(ctx context.Context, summary *model.VideoSummary) error {
	sID := summary.ID.String()
	properties := map[string]any{
		"owner":       summary.OwnerID.String(),
		"title":       summary.Title,
		"sourceLink":  summary.SourceLink,
		"summaryText": summary.SummaryText,
	}

	// check it already exists
	exists, err := w.client.Data().
		Checker().
		WithID(sID).
		WithClassName(className).
		Do(ctx)
	if err != nil {
		return err
	}

	if exists {
		return w.client.Data().
			Updater().
			WithID(sID).
			WithClassName(className).
			WithProperties(properties).
			Do(ctx)
	}

	_, err = w.client.Data().
		Creator().
		WithClassName(className).
		WithID(sID).
		WithProperties(properties).
		Do(ctx)

	return err
}

func (w *Weaviate) Search(ctx context.Context, owner uuid.UUID, query string, limit int) ([]*model.VideoSummary, error) {
	nearText := w.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})
	where := filters.Where().
		WithPath([]string{"owner"}).
		WithOperator(filters.Equal).
		WithValueString(owner.String())

	result, err := w.client.GraphQL().Get().
		WithClassName(className).
		WithFields(
			graphql.Field{Name: "title"},
			graphql.Field{Name: "sourceLink"},
			graphql.Field{Name: "summaryText"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "id"}}},
		).
		WithNearText(nearText).
		WithWhere(where).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("weaviate query failed: %s", result.Errors[0].Message)
	}

	get, ok := result.Data["Get"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected weaviate response")
	}
	objects, ok := get[className].([]any)
	if !ok {
		return []*model.VideoSummary{}, nil
	}

	summaries := make([]*model.VideoSummary, 0, len(objects))
	for _, object := range objects {
		properties, ok := object.(map[string]any)
		if !ok {
			continue
		}
		summary := &model.VideoSummary{
			OwnerID:     owner,
			Title:       str(properties["title"]),
			SourceLink:  str(properties["sourceLink"]),
			SummaryText: str(properties["summaryText"]),
		}
		if additional, ok := properties["_additional"].(map[string]any); ok {
			if id, err := uuid.Parse(str(additional["id"])); err == nil {
				summary.ID = id
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
