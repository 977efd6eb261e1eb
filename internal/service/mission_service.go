package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/dto"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/pkg/logger"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/events"
	"academic-workflow-be/pkg/mission/runner"
	"academic-workflow-be/pkg/mission/template"
	pktNats "academic-workflow-be/pkg/nats"

	"github.com/google/uuid"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrInvalidState    = errors.New("invalid mission state")
)

type IMissionService interface {
	Create(ctx context.Context, req *dto.CreateMissionRequest) (*dto.CreateMissionResponse, error)
	List(ctx context.Context, req *dto.ListMissionsRequest) ([]*dto.MissionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MissionResponse, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*dto.MissionDetailResponse, error)
	UpdateState(ctx context.Context, req *dto.UpdateMissionStateRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	RunBox(ctx context.Context, req *dto.RunBoxRequest) (*dto.RunBoxResponse, error)
}

type missionService struct {
	uowFactory     unitofwork.RepositoryFactory
	registry       *template.Registry
	boxRunner      *runner.Runner
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewMissionService(
	uowFactory unitofwork.RepositoryFactory,
	registry *template.Registry,
	boxRunner *runner.Runner,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IMissionService {
	return &missionService{
		uowFactory:     uowFactory,
		registry:       registry,
		boxRunner:      boxRunner,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// Create instantiates a mission from a registered template: the mission
// starts in draft and gets one idle box per template stage, ordered by
// stage position. An unknown template creates nothing.
func (s *missionService) Create(ctx context.Context, req *dto.CreateMissionRequest) (*dto.CreateMissionResponse, error) {
	tpl, err := s.registry.Get(req.TemplateName)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission := entity.Mission{
		Id:           uuid.New(),
		Name:         req.Name,
		MissionType:  tpl.MissionType,
		State:        constant.MissionStateDraft,
		ClassId:      req.ClassId,
		AssignmentId: req.AssignmentId,
		Metadata:     tpl.Metadata,
		CreatedAt:    time.Now().UTC(),
	}

	boxes := make([]*entity.MissionBox, 0, len(tpl.Stages))
	for i, stage := range tpl.Stages {
		boxes = append(boxes, &entity.MissionBox{
			Id:         uuid.New(),
			MissionId:  mission.Id,
			BoxType:    stage.BoxType,
			OrderIndex: i,
			State:      constant.BoxStateIdle,
			Config:     stage.Config,
			CreatedAt:  time.Now().UTC(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MissionRepository().Create(ctx, &mission); err != nil {
		return nil, err
	}
	if len(boxes) > 0 {
		if err := uow.MissionBoxRepository().CreateBulk(ctx, boxes); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.MissionCreated, map[string]interface{}{
		"mission_id":   mission.Id,
		"mission_type": mission.MissionType,
		"name":         mission.Name,
	})

	resp := &dto.CreateMissionResponse{
		Id:    mission.Id,
		State: mission.State,
		Boxes: make([]dto.MissionBoxResponse, 0, len(boxes)),
	}
	for _, box := range boxes {
		resp.Boxes = append(resp.Boxes, toBoxResponse(box))
	}
	return resp, nil
}

func (s *missionService) List(ctx context.Context, req *dto.ListMissionsRequest) ([]*dto.MissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	missions, err := uow.MissionRepository().List(ctx, contractFilter(req))
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MissionResponse, 0, len(missions))
	for _, m := range missions {
		r := toMissionResponse(m)
		result = append(result, &r)
	}
	return result, nil
}

func (s *missionService) Get(ctx context.Context, id uuid.UUID) (*dto.MissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissionNotFound, id)
	}

	resp := toMissionResponse(mission)
	return &resp, nil
}

func (s *missionService) GetDetail(ctx context.Context, id uuid.UUID) (*dto.MissionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissionNotFound, id)
	}

	boxes, err := uow.MissionBoxRepository().ListByMission(ctx, id)
	if err != nil {
		return nil, err
	}
	artifacts, err := uow.MissionArtifactRepository().ListByMission(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := uow.PracticeSessionRepository().ListByMission(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.MissionDetailResponse{
		MissionResponse: toMissionResponse(mission),
		Boxes:           make([]dto.MissionBoxResponse, 0, len(boxes)),
		Artifacts:       make([]dto.MissionArtifactResponse, 0, len(artifacts)),
		Sessions:        make([]dto.PracticeSessionResponse, 0, len(sessions)),
	}
	for _, box := range boxes {
		detail.Boxes = append(detail.Boxes, toBoxResponse(box))
	}
	for _, a := range artifacts {
		detail.Artifacts = append(detail.Artifacts, dto.MissionArtifactResponse{
			Id:           a.Id,
			BoxId:        a.BoxId,
			ArtifactType: a.ArtifactType,
			Title:        a.Title,
			Content:      a.Content,
			SourceRefs:   a.SourceRefs,
			CreatedAt:    a.CreatedAt,
		})
	}
	for _, sess := range sessions {
		detail.Sessions = append(detail.Sessions, dto.PracticeSessionResponse{
			Id:        sess.Id,
			State:     sess.State,
			Score:     sess.Score,
			CreatedAt: sess.CreatedAt,
		})
	}
	return detail, nil
}

func (s *missionService) UpdateState(ctx context.Context, req *dto.UpdateMissionStateRequest) error {
	if !constant.IsValidMissionState(req.State) {
		return fmt.Errorf("%w: %q", ErrInvalidState, req.State)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindById(ctx, req.Id)
	if err != nil {
		return err
	}
	if mission == nil {
		return fmt.Errorf("%w: %s", ErrMissionNotFound, req.Id)
	}

	now := time.Now().UTC()
	mission.State = req.State
	mission.UpdatedAt = &now
	return uow.MissionRepository().Update(ctx, mission)
}

// Delete removes the mission and everything scoped to it: boxes,
// artifacts and practice sessions.
func (s *missionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if mission == nil {
		return fmt.Errorf("%w: %s", ErrMissionNotFound, id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MissionBoxRepository().DeleteByMission(ctx, id); err != nil {
		return err
	}
	if err := uow.MissionArtifactRepository().DeleteByMission(ctx, id); err != nil {
		return err
	}
	if err := uow.PracticeSessionRepository().DeleteByMission(ctx, id); err != nil {
		return err
	}
	if err := uow.MissionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.MissionDeleted, map[string]interface{}{
		"mission_id": id,
	})
	return nil
}

// RunBox executes one stage through the box runner and reflects the
// outcome on the event bus. The runner owns the state machine; this layer
// only resolves the mission and reports.
func (s *missionService) RunBox(ctx context.Context, req *dto.RunBoxRequest) (*dto.RunBoxResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindById(ctx, req.MissionId)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissionNotFound, req.MissionId)
	}

	result, err := s.boxRunner.Run(ctx, uow, req.MissionId, req.BoxId, req.Payload)
	if err != nil {
		s.publishEvent(ctx, events.BoxFailed, map[string]interface{}{
			"mission_id": req.MissionId,
			"box_id":     req.BoxId,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.publishEvent(ctx, events.BoxCompleted, map[string]interface{}{
		"mission_id": req.MissionId,
		"box_id":     result.BoxId,
		"artifacts":  len(result.Artifacts),
	})

	return &dto.RunBoxResponse{
		BoxId:     result.BoxId,
		State:     result.State,
		Artifacts: result.Artifacts,
	}, nil
}

// publishEvent is best-effort: the bus is optional and a publish failure
// never fails the operation that triggered it.
func (s *missionService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("mission_service", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func contractFilter(req *dto.ListMissionsRequest) contract.MissionFilter {
	if req == nil {
		return contract.MissionFilter{}
	}
	return contract.MissionFilter{
		ClassId:     req.ClassId,
		MissionType: req.MissionType,
		State:       req.State,
	}
}

func toMissionResponse(m *entity.Mission) dto.MissionResponse {
	return dto.MissionResponse{
		Id:           m.Id,
		Name:         m.Name,
		MissionType:  m.MissionType,
		State:        m.State,
		ClassId:      m.ClassId,
		AssignmentId: m.AssignmentId,
		Metadata:     m.Metadata,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toBoxResponse(box *entity.MissionBox) dto.MissionBoxResponse {
	return dto.MissionBoxResponse{
		Id:         box.Id,
		BoxType:    box.BoxType,
		OrderIndex: box.OrderIndex,
		State:      box.State,
		LastRunAt:  box.LastRunAt,
		LastError:  box.LastError,
		Config:     box.Config,
	}
}
