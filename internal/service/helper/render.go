package helper

import (
	"fmt"

	"mockui/internal/domain"
	"mockui/internal/model"
)

// Render records the intent to render a block. Nothing is drawn; the UI layer
// follows change:blueprint. A falsy payload fails with ErrInvalidData before
// anything is recorded.
func (s *Service) Render(blockType string, data any) error {
	if !domain.IsValidBlockType(blockType) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidBlockType, blockType)
	}
	if !domain.IsTruthy(data) {
		s.metrics.RenderRejected()
		return domain.ErrInvalidData
	}

	s.Log(`Render block "`+blockType+`". Payload: `, data)
	s.store.AppendBlueprint(model.BlueprintRecord{
		Type: blockType,
		Data: data,
	})
	s.metrics.BlockRendered(blockType)
	return nil
}

func (s *Service) RenderAvatar(data any) error {
	return s.Render(domain.BlockAvatar, data)
}

func (s *Service) RenderArticle(data any) error {
	return s.Render(domain.BlockArticle, data)
}

func (s *Service) RenderComments(data any) error {
	return s.Render(domain.BlockComments, data)
}

func (s *Service) RenderRelated(data any) error {
	return s.Render(domain.BlockRelated, data)
}

func (s *Service) RenderTags(data any) error {
	return s.Render(domain.BlockTags, data)
}
