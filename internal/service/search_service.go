package service

import (
	"html"
	"log"

	"anoa.com/magangmatch/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const postingsIndex = "postings"

// SearchService keeps the Meilisearch posting index in sync so the
// candidate-facing listing can be searched. Only active postings live in the
// index; paused and archived ones are removed.
type SearchService interface {
	IndexPosting(posting *model.Posting) error
	RemovePosting(id string) error
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

type postingDocument struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	WorkMode        string   `json:"work_mode"`
	Province        string   `json:"province"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Description     string   `json:"description"`
	CompanyEmail    string   `json:"company_email"`
	CreatedAt       int64    `json:"created_at"`
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	searchableAttrs := []string{"title", "category", "description", "required_skills", "preferred_skills"}
	_, err := s.client.Index(postingsIndex).UpdateSearchableAttributes(&searchableAttrs)
	if err != nil {
		log.Printf("Failed to update postings searchable attributes: %v", err)
	}

	filterableAttrs := []string{"category", "work_mode", "province"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err = s.client.Index(postingsIndex).UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update postings filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	_, err = s.client.Index(postingsIndex).UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update postings sortable attributes: %v", err)
	}

	log.Println("Meilisearch postings index initialized")
}

func (s *searchService) IndexPosting(posting *model.Posting) error {
	doc := postingDocument{
		ID:              posting.ID.String(),
		Title:           posting.Title,
		Category:        posting.Category,
		WorkMode:        posting.WorkMode,
		Province:        posting.Province,
		RequiredSkills:  posting.RequiredSkills,
		PreferredSkills: posting.PreferredSkills,
		Description:     html.UnescapeString(s.sanitizer.Sanitize(posting.Description)),
		CompanyEmail:    posting.CompanyEmail,
		CreatedAt:       posting.CreatedAt.Unix(),
	}
	_, err := s.client.Index(postingsIndex).AddDocuments([]postingDocument{doc}, strPtr("id"))
	return err
}

func (s *searchService) RemovePosting(id string) error {
	_, err := s.client.Index(postingsIndex).DeleteDocument(id)
	return err
}

func strPtr(s string) *string {
	return &s
}
