package search

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"tuiter/internal/entity"
)

// SearchService fronts the Meilisearch indexes for tuits and users.
// Indexing is best-effort: the database is the source of truth and a failed
// index write must not fail the request that triggered it.
type SearchService interface {
	IndexTuit(tuit *entity.Tuit) error
	DeleteTuit(id string) error
	IndexUser(user *entity.User) error
	DeleteUser(id string) error
	Search(query string, limit int64) (*Results, error)
}

type Results struct {
	Tuits []map[string]interface{} `json:"tuits"`
	Users []map[string]interface{} `json:"users"`
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	sortable := []string{"posted_on"}
	if _, err := s.client.Index("tuits").UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update tuits sortable attributes: %v", err)
	}

	userSearchable := []string{"username", "first_name", "last_name", "biography"}
	if _, err := s.client.Index("users").UpdateSearchableAttributes(&userSearchable); err != nil {
		log.Printf("Failed to update users searchable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliTuitDoc struct {
	ID       string `json:"id"`
	Tuit     string `json:"tuit"`
	Author   string `json:"author"`
	PostedOn int64  `json:"posted_on"`
}

type meiliUserDoc struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Biography string `json:"biography"`
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexTuit(tuit *entity.Tuit) error {
	doc := meiliTuitDoc{
		ID:       tuit.ID.String(),
		Tuit:     s.cleanContentForIndex(tuit.Tuit),
		PostedOn: tuit.PostedOn.Unix(),
	}
	if tuit.PostedBy != nil {
		doc.Author = tuit.PostedBy.Username
	}

	_, err := s.client.Index("tuits").AddDocuments([]meiliTuitDoc{doc}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeleteTuit(id string) error {
	_, err := s.client.Index("tuits").DeleteDocument(id)
	return err
}

func (s *meiliSearchService) IndexUser(user *entity.User) error {
	doc := meiliUserDoc{
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: getStringOrEmpty(user.FirstName),
		LastName:  getStringOrEmpty(user.LastName),
		Biography: s.cleanContentForIndex(getStringOrEmpty(user.Biography)),
	}

	_, err := s.client.Index("users").AddDocuments([]meiliUserDoc{doc}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeleteUser(id string) error {
	_, err := s.client.Index("users").DeleteDocument(id)
	return err
}

func (s *meiliSearchService) Search(query string, limit int64) (*Results, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	tuitResp, err := s.client.Index("tuits").Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}

	userResp, err := s.client.Index("users").Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}

	return &Results{
		Tuits: hitsToMaps(tuitResp.Hits),
		Users: hitsToMaps(userResp.Hits),
	}, nil
}

func hitsToMaps(hits interface{}) []map[string]interface{} {
	raw, err := json.Marshal(hits)
	if err != nil {
		return nil
	}

	var out []map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
