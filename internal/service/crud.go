package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"dashboard-service/internal/client"
	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/session"
)

// ErrValidation reports that a save was blocked before any network call.
var ErrValidation = errors.New("validation failed")

// EditSession records which record a form is editing. A nil RecordID means
// create mode. At most one exists per session, owned by the open modal.
type EditSession struct {
	Kind     entity.Kind
	RecordID *int
}

// PendingDeletion is a staged, not-yet-confirmed delete. Confirming consumes
// it exactly once; cancelling the dialog clears it so no stale action can
// fire later.
type PendingDeletion struct {
	Kind     entity.Kind
	RecordID int
}

// CrudService drives the generic request/render/refresh cycle for all ten
// entity kinds, parameterized by descriptor.
type CrudService struct {
	client   *client.Client
	center   *notify.Center
	events   *EventPublisher
	validate *validator.Validate

	mu        sync.Mutex
	edits     map[string]*EditSession
	deletions map[string]*PendingDeletion
}

// NewCrudService creates a new instance of CrudService.
func NewCrudService(cli *client.Client, center *notify.Center, events *EventPublisher) *CrudService {
	return &CrudService{
		client:    cli,
		center:    center,
		events:    events,
		validate:  validator.New(),
		edits:     map[string]*EditSession{},
		deletions: map[string]*PendingDeletion{},
	}
}

// Load fetches a kind's full collection. Mutating actions always come back
// through here rather than patching the rendered view.
func (s *CrudService) Load(ctx context.Context, d entity.Descriptor) ([]entity.Record, error) {
	return s.client.List(ctx, d.CollectionPath)
}

// OpenCreate starts a create-mode edit session with a cleared form.
func (s *CrudService) OpenCreate(ctx context.Context, d entity.Descriptor) {
	s.setEdit(ctx, &EditSession{Kind: d.Kind})
}

// OpenEdit fetches the record and starts an edit-mode session. On failure it
// notifies and leaves no session open: a form never opens with partial data.
func (s *CrudService) OpenEdit(ctx context.Context, d entity.Descriptor, id int) (entity.Record, error) {
	record, err := s.client.Get(ctx, fmt.Sprintf("%s/%d", d.ItemPath, id))
	if err != nil {
		s.center.Push(session.IDFromContext(ctx), notify.Error,
			fmt.Sprintf("Error cargando datos %s %s", article(d), strings.ToLower(d.Singular)))
		return nil, err
	}
	s.setEdit(ctx, &EditSession{Kind: d.Kind, RecordID: &id})
	return record, nil
}

// CloseForm ends whatever edit session the modal owned.
func (s *CrudService) CloseForm(ctx context.Context) {
	s.setEdit(ctx, nil)
}

// Edit returns the session's current edit state, or nil.
func (s *CrudService) Edit(ctx context.Context) *EditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edits[session.IDFromContext(ctx)]
}

// Save validates the submitted values and issues PUT when an edit session
// holds a record ID, POST otherwise. Validation failures return field
// messages with ErrValidation and never reach the network. On success the
// edit session closes; on remote failure it stays open for retry.
func (s *CrudService) Save(ctx context.Context, d entity.Descriptor, values map[string]string) (map[string]string, error) {
	payload, fieldErrs := s.buildPayload(d, values)
	if len(fieldErrs) > 0 {
		return fieldErrs, ErrValidation
	}

	sid := session.IDFromContext(ctx)
	edit := s.Edit(ctx)
	created := edit == nil || edit.RecordID == nil

	var err error
	var recordID int
	if created {
		_, err = s.client.Post(ctx, d.ItemPath, payload)
	} else {
		recordID = *edit.RecordID
		_, err = s.client.Put(ctx, fmt.Sprintf("%s/%d", d.ItemPath, recordID), payload)
	}
	if err != nil {
		s.center.Push(sid, notify.Error, "Error guardando "+strings.ToLower(d.Singular))
		return nil, err
	}

	s.setEdit(ctx, nil)
	s.center.Push(sid, notify.Success, d.SavedMessage(created))
	action := "updated"
	if created {
		action = "created"
	}
	s.events.Publish(ctx, string(d.Kind), action, recordID)
	return nil, nil
}

// StageDeletion parks the delete behind the confirmation dialog. Only one
// deletion can be pending per session; staging replaces any previous one.
func (s *CrudService) StageDeletion(ctx context.Context, d entity.Descriptor, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletions[session.IDFromContext(ctx)] = &PendingDeletion{Kind: d.Kind, RecordID: id}
}

// Pending returns the session's staged deletion, or nil.
func (s *CrudService) Pending(ctx context.Context) *PendingDeletion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletions[session.IDFromContext(ctx)]
}

// ConfirmDeletion consumes the staged deletion and issues the DELETE. The
// staged action is taken before the request goes out, so a second confirm
// finds nothing to fire.
func (s *CrudService) ConfirmDeletion(ctx context.Context) (*PendingDeletion, error) {
	sid := session.IDFromContext(ctx)

	s.mu.Lock()
	pending := s.deletions[sid]
	delete(s.deletions, sid)
	s.mu.Unlock()

	if pending == nil {
		return nil, nil
	}
	d, ok := entity.ByKind(pending.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", pending.Kind)
	}

	if err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", d.ItemPath, pending.RecordID)); err != nil {
		s.center.Push(sid, notify.Error, "Error eliminando "+strings.ToLower(d.Singular))
		return nil, err
	}

	s.center.Push(sid, notify.Success, d.DeletedMessage())
	s.events.Publish(ctx, string(d.Kind), "deleted", pending.RecordID)
	return pending, nil
}

// CancelDeletion clears the staged action when the dialog is dismissed.
func (s *CrudService) CancelDeletion(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deletions, session.IDFromContext(ctx))
}

// buildPayload decodes form values into the JSON body: checkboxes become
// booleans, numbers become numbers, empty optional fields become null.
func (s *CrudService) buildPayload(d entity.Descriptor, values map[string]string) (map[string]any, map[string]string) {
	payload := map[string]any{}
	fieldErrs := map[string]string{}

	for _, f := range d.Fields {
		raw := strings.TrimSpace(values[f.Name])

		if f.Input == entity.InputCheckbox {
			payload[f.Name] = raw == "on" || raw == "true"
			continue
		}

		if raw == "" {
			if f.Required {
				fieldErrs[f.Name] = "Este campo es obligatorio"
			} else {
				payload[f.Name] = nil
			}
			continue
		}

		switch f.Input {
		case entity.InputNumber:
			num, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fieldErrs[f.Name] = "Valor inválido"
				continue
			}
			if f.Rules != "" {
				if err := s.validate.Var(num, f.Rules); err != nil {
					fieldErrs[f.Name] = "Valor inválido"
					continue
				}
			}
			payload[f.Name] = num
		case entity.InputSelect:
			id, err := strconv.Atoi(raw)
			if err != nil {
				fieldErrs[f.Name] = "Valor inválido"
				continue
			}
			payload[f.Name] = id
		default:
			if f.Rules != "" {
				if err := s.validate.Var(raw, f.Rules); err != nil {
					fieldErrs[f.Name] = "Valor inválido"
					continue
				}
			}
			payload[f.Name] = raw
		}
	}

	return payload, fieldErrs
}

func (s *CrudService) setEdit(ctx context.Context, edit *EditSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid := session.IDFromContext(ctx)
	if edit == nil {
		delete(s.edits, sid)
		return
	}
	s.edits[sid] = edit
}

func article(d entity.Descriptor) string {
	if d.Feminine {
		return "de la"
	}
	return "del"
}
