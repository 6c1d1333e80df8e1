package handler

import "github.com/taskforge/taskforge/internal/core/domain"

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toEpicResponse(e *domain.Epic) epicResponse {
	return epicResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		EpicID:      t.EpicID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toProjectList(projects []*domain.Project) listResponse[projectResponse] {
	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}
	return listResponse[projectResponse]{Items: items, Total: len(items)}
}

func toEpicList(epics []*domain.Epic) listResponse[epicResponse] {
	items := make([]epicResponse, 0, len(epics))
	for _, e := range epics {
		items = append(items, toEpicResponse(e))
	}
	return listResponse[epicResponse]{Items: items, Total: len(items)}
}

func toTaskList(tasks []*domain.Task) listResponse[taskResponse] {
	items := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskResponse(t))
	}
	return listResponse[taskResponse]{Items: items, Total: len(items)}
}
