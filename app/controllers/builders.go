package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/app/models"
	"projecthub/app/schemas"
	"projecthub/app/utils"
)

// builder assembles the nested response forms shared by several controllers:
// sprints with their metrics, projects with their sprints and members, and so
// on.
type builder struct {
	projects ProjectStore
	sprints  SprintStore
	tasks    TaskStore
	users    UserStore
}

// sprintMetrics loads the tasks and activities of a sprint and computes its
// aggregate figures.
func (b *builder) sprintMetrics(ctx context.Context, sprint models.Sprint) (utils.SprintMetrics, []models.Task, []models.SprintTransversalActivity, error) {
	tasks, err := b.tasks.BySprint(ctx, sprint.ID.Hex(), false)
	if err != nil {
		return utils.SprintMetrics{}, nil, nil, err
	}
	activities, err := b.sprints.ActivitiesBySprint(ctx, sprint.ID.Hex(), false)
	if err != nil {
		return utils.SprintMetrics{}, nil, nil, err
	}
	return utils.CalculateSprintMetrics(sprint, activities, tasks), tasks, activities, nil
}

func (b *builder) sprintLight(ctx context.Context, sprint models.Sprint) (schemas.SprintLightResponse, error) {
	metrics, _, _, err := b.sprintMetrics(ctx, sprint)
	if err != nil {
		return schemas.SprintLightResponse{}, err
	}
	return schemas.SprintLightResponse{
		ID:         sprint.ID.Hex(),
		ProjectID:  sprint.ProjectID.Hex(),
		SprintName: sprint.SprintName,
		Status:     string(sprint.Status),
		StartDate:  sprint.StartDate,
		DueDate:    sprint.DueDate,
		Scoped:     metrics.Scoped,
		Capacity:   sprint.Capacity,
		Velocity:   metrics.Velocity,
		Progress:   metrics.Progress,
		TimeSpent:  metrics.TimeSpent,
		OTD:        metrics.OTD,
		OQD:        metrics.OQD,
	}, nil
}

// sprintFull builds the complete sprint response: metrics, tasks, project
// members, delivery targets and the activity breakdown.
func (b *builder) sprintFull(ctx context.Context, sprint models.Sprint) (schemas.SprintResponse, error) {
	metrics, tasks, activities, err := b.sprintMetrics(ctx, sprint)
	if err != nil {
		return schemas.SprintResponse{}, err
	}

	taskResponses := make([]schemas.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		taskResponses = append(taskResponses, schemas.NewTaskResponse(task))
	}
	activityResponses := make([]schemas.SprintActivityResponse, 0, len(activities))
	for _, act := range activities {
		activityResponses = append(activityResponses, schemas.NewSprintActivityResponse(act))
	}

	users, err := b.projectUsers(ctx, sprint.ProjectID)
	if err != nil {
		return schemas.SprintResponse{}, err
	}
	targets, err := b.sprints.RelevantByProject(ctx, sprint.ProjectID.Hex())
	if err != nil {
		return schemas.SprintResponse{}, err
	}

	resp := schemas.SprintResponse{
		ID:                    sprint.ID.Hex(),
		ProjectID:             sprint.ProjectID.Hex(),
		SprintName:            sprint.SprintName,
		Status:                string(sprint.Status),
		StartDate:             sprint.StartDate,
		DueDate:               sprint.DueDate,
		Capacity:              sprint.Capacity,
		Duration:              metrics.Duration,
		Scoped:                metrics.Scoped,
		Velocity:              metrics.Velocity,
		Progress:              metrics.Progress,
		TimeSpent:             metrics.TimeSpent,
		OTD:                   metrics.OTD,
		OQD:                   metrics.OQD,
		Tasks:                 taskResponses,
		Users:                 users,
		SprintTargets:         targets,
		TransversalActivities: activityResponses,
		TaskStatuses:          sprint.TaskStatuses,
		TaskTypes:             sprint.TaskTypes,
	}

	project, err := b.projects.GetByID(ctx, sprint.ProjectID.Hex(), false)
	if err == nil {
		resp.ProjectName = project.ProjectName
		if len(resp.TaskStatuses) == 0 {
			resp.TaskStatuses = project.TaskStatuses
		}
		if len(resp.TaskTypes) == 0 {
			resp.TaskTypes = project.TaskTypes
		}
	}
	return resp, nil
}

func (b *builder) projectLight(ctx context.Context, project models.Project) (schemas.ProjectLightResponse, error) {
	sprints, _, err := b.sprints.List(ctx, 0, 0, nil, project.ID.Hex(), "", false)
	if err != nil {
		return schemas.ProjectLightResponse{}, err
	}
	lights := make([]schemas.SprintLightResponse, 0, len(sprints))
	for _, sprint := range sprints {
		light, err := b.sprintLight(ctx, sprint)
		if err != nil {
			return schemas.ProjectLightResponse{}, err
		}
		lights = append(lights, light)
	}
	resp := schemas.ProjectLightResponse{
		ID:          project.ID.Hex(),
		ProjectName: project.ProjectName,
		Status:      string(project.Status),
		Sprints:     lights,
	}
	if project.CenterID != nil {
		resp.CenterID = project.CenterID.Hex()
	}
	return resp, nil
}

// projectFull builds the complete project response with its sprints, members
// and activity catalog.
func (b *builder) projectFull(ctx context.Context, project models.Project) (schemas.ProjectResponse, error) {
	light, err := b.projectLight(ctx, project)
	if err != nil {
		return schemas.ProjectResponse{}, err
	}
	users, err := b.projectUsers(ctx, project.ID)
	if err != nil {
		return schemas.ProjectResponse{}, err
	}
	activities, err := b.projects.ActivitiesByProject(ctx, project.ID.Hex(), false)
	if err != nil {
		return schemas.ProjectResponse{}, err
	}
	activityResponses := make([]schemas.ProjectActivityResponse, 0, len(activities))
	for _, act := range activities {
		activityResponses = append(activityResponses, schemas.NewProjectActivityResponse(act))
	}
	return schemas.ProjectResponse{
		ID:                    light.ID,
		ProjectName:           light.ProjectName,
		Status:                light.Status,
		CenterID:              light.CenterID,
		Sprints:               light.Sprints,
		Users:                 users,
		TechnicalLoadRatio:    project.WorkloadRatio,
		TransversalActivities: activityResponses,
		TaskStatuses:          project.TaskStatuses,
		TaskTypes:             project.TaskTypes,
	}, nil
}

// centerFull builds the complete service center response with its projects
// and registered users.
func (b *builder) centerFull(ctx context.Context, center models.ServiceCenter) (schemas.ServiceCenterResponse, error) {
	projects, _, err := b.projects.List(ctx, 0, 0, center.ID.Hex(), "", false)
	if err != nil {
		return schemas.ServiceCenterResponse{}, err
	}
	lights := make([]schemas.ProjectLightResponse, 0, len(projects))
	for _, project := range projects {
		light, err := b.projectLight(ctx, project)
		if err != nil {
			return schemas.ServiceCenterResponse{}, err
		}
		lights = append(lights, light)
	}

	users := []schemas.UserInfo{}
	if len(center.Users) > 0 {
		ids := make([]string, 0, len(center.Users))
		for _, id := range center.Users {
			ids = append(ids, id.Hex())
		}
		found, _, err := b.users.GetByIDs(ctx, ids, false)
		if err != nil {
			return schemas.ServiceCenterResponse{}, err
		}
		for _, user := range found {
			users = append(users, schemas.NewUserInfo(user))
		}
	}

	return schemas.ServiceCenterResponse{
		ID:           center.ID.Hex(),
		CenterName:   center.CenterName,
		Location:     center.Location,
		ContactEmail: center.ContactEmail,
		ContactPhone: center.ContactPhone,
		Status:       string(center.Status),
		Projects:     lights,
		Users:        users,
	}, nil
}

// projectUsers lists the members of a project through its access grants.
func (b *builder) projectUsers(ctx context.Context, projectID primitive.ObjectID) ([]schemas.UserInfo, error) {
	grants, err := b.users.ProjectAccessesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	seen := map[primitive.ObjectID]bool{}
	ids := make([]string, 0, len(grants))
	for _, grant := range grants {
		if !seen[grant.UserID] {
			seen[grant.UserID] = true
			ids = append(ids, grant.UserID.Hex())
		}
	}
	infos := []schemas.UserInfo{}
	if len(ids) == 0 {
		return infos, nil
	}
	users, _, err := b.users.GetByIDs(ctx, ids, false)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		infos = append(infos, schemas.NewUserInfo(user))
	}
	return infos, nil
}

// userFull builds the complete user response with their access grants.
func (b *builder) userFull(ctx context.Context, user models.User) (schemas.UserResponse, error) {
	directors, err := b.users.DirectorAccessesByUser(ctx, user.ID)
	if err != nil {
		return schemas.UserResponse{}, err
	}
	projects, err := b.users.ProjectAccessesByUser(ctx, user.ID)
	if err != nil {
		return schemas.UserResponse{}, err
	}
	directorResponses := make([]schemas.DirectorAccessResponse, 0, len(directors))
	for _, grant := range directors {
		directorResponses = append(directorResponses, schemas.NewDirectorAccessResponse(grant))
	}
	projectResponses := make([]schemas.ProjectAccessResponse, 0, len(projects))
	for _, grant := range projects {
		projectResponses = append(projectResponses, schemas.NewProjectAccessResponse(grant))
	}
	return schemas.UserResponse{
		ID:                 user.ID.Hex(),
		FirstName:          user.FirstName,
		FamilyName:         user.FamilyName,
		Email:              user.Email,
		Type:               string(user.Type),
		RegistrationNumber: user.RegistrationNumber,
		Trigram:            user.Trigram,
		DirectorAccessList: directorResponses,
		ProjectAccessList:  projectResponses,
	}, nil
}
