package mapper

import (
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:               d.Id,
		OriginalFilename: d.OriginalFilename,
		FileType:         d.FileType,
		FileSize:         d.FileSize,
		StoragePath:      d.StoragePath,
		ClassId:          d.ClassId,
		AssignmentId:     d.AssignmentId,
		CreatedAt:        d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}
	return &model.Document{
		Id:               e.Id,
		OriginalFilename: e.OriginalFilename,
		FileType:         e.FileType,
		FileSize:         e.FileSize,
		StoragePath:      e.StoragePath,
		ClassId:          e.ClassId,
		AssignmentId:     e.AssignmentId,
		CreatedAt:        e.CreatedAt,
	}
}

type ExtractedTextMapper struct{}

func NewExtractedTextMapper() *ExtractedTextMapper {
	return &ExtractedTextMapper{}
}

func (m *ExtractedTextMapper) ToEntity(t *model.ExtractedText) *entity.ExtractedText {
	if t == nil {
		return nil
	}
	return &entity.ExtractedText{
		Id:         t.Id,
		DocumentId: t.DocumentId,
		Content:    t.Content,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *ExtractedTextMapper) ToModel(e *entity.ExtractedText) *model.ExtractedText {
	if e == nil {
		return nil
	}
	return &model.ExtractedText{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Content:    e.Content,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
	}
}

type TextChunkMapper struct{}

func NewTextChunkMapper() *TextChunkMapper {
	return &TextChunkMapper{}
}

func (m *TextChunkMapper) ToEntity(c *model.TextChunk) *entity.TextChunk {
	if c == nil {
		return nil
	}

	var embedding []float32
	if c.Embedding != nil {
		embedding = c.Embedding.Slice()
	}

	return &entity.TextChunk{
		Id:              c.Id,
		ExtractedTextId: c.ExtractedTextId,
		DocumentId:      c.DocumentId,
		ClassId:         c.ClassId,
		AssignmentId:    c.AssignmentId,
		ChunkIndex:      c.ChunkIndex,
		Content:         c.Content,
		ChunkType:       c.ChunkType,
		SectionTitle:    c.SectionTitle,
		WordCount:       c.WordCount,
		CharStart:       c.CharStart,
		CharEnd:         c.CharEnd,
		Embedding:       embedding,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *TextChunkMapper) ToModel(e *entity.TextChunk) *model.TextChunk {
	if e == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if e.Embedding != nil {
		v := pgvector.NewVector(e.Embedding)
		embedding = &v
	}

	return &model.TextChunk{
		Id:              e.Id,
		ExtractedTextId: e.ExtractedTextId,
		DocumentId:      e.DocumentId,
		ClassId:         e.ClassId,
		AssignmentId:    e.AssignmentId,
		ChunkIndex:      e.ChunkIndex,
		Content:         e.Content,
		ChunkType:       e.ChunkType,
		SectionTitle:    e.SectionTitle,
		WordCount:       e.WordCount,
		CharStart:       e.CharStart,
		CharEnd:         e.CharEnd,
		Embedding:       embedding,
		CreatedAt:       e.CreatedAt,
	}
}

func (m *TextChunkMapper) ToEntities(models []*model.TextChunk) []*entity.TextChunk {
	entities := make([]*entity.TextChunk, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
