package engine

import (
	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// DefaultWorkflowID identifies the built-in standard workflow. It must always
// exist in the store; the repair pass recreates it when missing.
const DefaultWorkflowID = "wf_default"

const DefaultWorkflowName = "Standard Project Workflow"
const DefaultWorkflowDescription = "Standard approval pipeline from offer to completion"

// Action names recognised by the canonical pipeline. ActionDefault and
// ActionSubmitted double as the resolver's fallback actions, in that order.
const (
	ActionDefault           = "default"
	ActionSubmitted         = "submitted"
	ActionApproved          = "approved"
	ActionCanceled          = "canceled"
	ActionRevisionRequested = "revision_requested"
	ActionFileUploaded      = "file_uploaded"
	ActionReviseAfterSidang = "revise_after_sidang"
)

// Statuses used by the canonical pipeline.
const (
	StatusPendingOffer          = "Pending Offer"
	StatusPendingApproval       = "Pending Approval"
	StatusPendingDPInvoice      = "Pending DP Invoice"
	StatusPendingAdminFiles     = "Pending Admin Files"
	StatusPendingSurvey         = "Pending Survey"
	StatusPendingDesignFiles    = "Pending Design Files"
	StatusPendingSidangSchedule = "Pending Sidang Schedule"
	StatusPendingSidangOutcome  = "Pending Sidang Outcome"
	StatusCompleted             = "Completed"
	StatusCanceled              = "Canceled"
)

// CanonicalSteps returns a fresh copy of the organisation's standard step
// sequence: offer, owner approval, down payment invoice, administrative
// files, site survey, design uploads (architecture, structure and MEP drawings
// are uploaded in parallel; the caller aggregates them and submits the step
// once all are in), sidang scheduling, sidang outcome, then Completed or
// Canceled. Every non-terminal step can be canceled. This is the seed for the
// default workflow and for every newly added workflow.
func CanonicalSteps() []domain.Step {
	return []domain.Step{
		{
			StepName:              "Offer",
			Status:                StatusPendingOffer,
			AssignedDivision:      domain.DivisionAdminProyek,
			Progress:              10,
			NextActionDescription: strPtr("Prepare and upload the offer letter"),
			Transitions: map[string]domain.Transition{
				ActionSubmitted: {
					TargetStatus:                StatusPendingApproval,
					TargetAssignedDivision:      domain.DivisionOwner,
					TargetNextActionDescription: strPtr("Review the offer and approve or request a revision"),
					TargetProgress:              20,
					Notification:                notify(domain.DivisionOwner, "Project {projectName} has a new offer awaiting approval."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Owner Approval",
			Status:                StatusPendingApproval,
			AssignedDivision:      domain.DivisionOwner,
			Progress:              20,
			NextActionDescription: strPtr("Review the offer and approve or request a revision"),
			Transitions: map[string]domain.Transition{
				ActionApproved: {
					TargetStatus:                StatusPendingDPInvoice,
					TargetAssignedDivision:      domain.DivisionAdminKeuangan,
					TargetNextActionDescription: strPtr("Issue the down payment invoice"),
					TargetProgress:              30,
					Notification:                notify(domain.DivisionAdminKeuangan, "The offer for {projectName} was approved. Issue the down payment invoice."),
				},
				ActionRevisionRequested: {
					TargetStatus:                StatusPendingOffer,
					TargetAssignedDivision:      domain.DivisionAdminProyek,
					TargetNextActionDescription: strPtr("Prepare and upload the offer letter"),
					TargetProgress:              10,
					Notification:                notify(domain.DivisionAdminProyek, "The offer for {projectName} needs revision."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Down Payment Invoice",
			Status:                StatusPendingDPInvoice,
			AssignedDivision:      domain.DivisionAdminKeuangan,
			Progress:              30,
			NextActionDescription: strPtr("Issue the down payment invoice"),
			Transitions: map[string]domain.Transition{
				ActionSubmitted: {
					TargetStatus:                StatusPendingAdminFiles,
					TargetAssignedDivision:      domain.DivisionAdminProyek,
					TargetNextActionDescription: strPtr("Upload the administrative documents"),
					TargetProgress:              40,
					Notification:                notify(domain.DivisionAdminProyek, "The down payment invoice for {projectName} has been issued. Upload the administrative documents."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Administrative Files",
			Status:                StatusPendingAdminFiles,
			AssignedDivision:      domain.DivisionAdminProyek,
			Progress:              40,
			NextActionDescription: strPtr("Upload the administrative documents"),
			Transitions: map[string]domain.Transition{
				ActionSubmitted: {
					TargetStatus:                StatusPendingSurvey,
					TargetAssignedDivision:      domain.DivisionSurveyor,
					TargetNextActionDescription: strPtr("Complete the site survey and upload the results"),
					TargetProgress:              50,
					Notification:                notify(domain.DivisionSurveyor, "Administrative documents for {projectName} are complete. Schedule the site survey."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Site Survey",
			Status:                StatusPendingSurvey,
			AssignedDivision:      domain.DivisionSurveyor,
			Progress:              50,
			NextActionDescription: strPtr("Complete the site survey and upload the results"),
			Transitions: map[string]domain.Transition{
				ActionSubmitted: {
					TargetStatus:                StatusPendingDesignFiles,
					TargetAssignedDivision:      domain.DivisionArsitek,
					TargetNextActionDescription: strPtr("Upload the architecture, structure and MEP drawings"),
					TargetProgress:              60,
					Notification:                notify(domain.DivisionArsitek, "The survey for {projectName} is complete. Design uploads may begin."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Design Files",
			Status:                StatusPendingDesignFiles,
			AssignedDivision:      domain.DivisionArsitek,
			Progress:              60,
			NextActionDescription: strPtr("Upload the architecture, structure and MEP drawings"),
			Transitions: map[string]domain.Transition{
				// partial uploads loop on the same step without a notification
				ActionFileUploaded: {
					TargetStatus:                StatusPendingDesignFiles,
					TargetAssignedDivision:      domain.DivisionArsitek,
					TargetNextActionDescription: strPtr("Upload the architecture, structure and MEP drawings"),
					TargetProgress:              60,
				},
				ActionSubmitted: {
					TargetStatus:                StatusPendingSidangSchedule,
					TargetAssignedDivision:      domain.DivisionAdminProyek,
					TargetNextActionDescription: strPtr("Schedule the sidang session"),
					TargetProgress:              70,
					Notification:                notify(domain.DivisionAdminProyek, "All design files for {projectName} are uploaded. Schedule the sidang session."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Sidang Schedule",
			Status:                StatusPendingSidangSchedule,
			AssignedDivision:      domain.DivisionAdminProyek,
			Progress:              70,
			NextActionDescription: strPtr("Schedule the sidang session"),
			Transitions: map[string]domain.Transition{
				ActionSubmitted: {
					TargetStatus:                StatusPendingSidangOutcome,
					TargetAssignedDivision:      domain.DivisionOwner,
					TargetNextActionDescription: strPtr("Record the sidang outcome"),
					TargetProgress:              80,
					Notification:                notify(domain.DivisionOwner, "The sidang for {projectName} has been scheduled. Record the outcome after the session."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:              "Sidang Outcome",
			Status:                StatusPendingSidangOutcome,
			AssignedDivision:      domain.DivisionOwner,
			Progress:              80,
			NextActionDescription: strPtr("Record the sidang outcome"),
			Transitions: map[string]domain.Transition{
				ActionApproved: {
					TargetStatus:           StatusCompleted,
					TargetAssignedDivision: domain.DivisionOwner,
					TargetProgress:         100,
					Notification:           notify(domain.DivisionAdminProyek, "Project {projectName} has been completed."),
				},
				ActionReviseAfterSidang: {
					TargetStatus:                StatusPendingDesignFiles,
					TargetAssignedDivision:      domain.DivisionArsitek,
					TargetNextActionDescription: strPtr("Upload the architecture, structure and MEP drawings"),
					TargetProgress:              60,
					Notification:                notify(domain.DivisionArsitek, "The sidang for {projectName} requested design revisions."),
				},
				ActionCanceled: cancelTransition(),
			},
		},
		{
			StepName:         "Completed",
			Status:           StatusCompleted,
			AssignedDivision: domain.DivisionOwner,
			Progress:         100,
		},
		{
			StepName:         "Canceled",
			Status:           StatusCanceled,
			AssignedDivision: domain.DivisionAdminProyek,
			Progress:         0,
		},
	}
}

func cancelTransition() domain.Transition {
	return domain.Transition{
		TargetStatus:           StatusCanceled,
		TargetAssignedDivision: domain.DivisionAdminProyek,
		TargetProgress:         0,
		Notification:           notify(domain.DivisionOwner, "Project {projectName} has been canceled."),
	}
}

func notify(division, message string) *domain.Notification {
	return &domain.Notification{Division: &division, Message: message}
}

func strPtr(s string) *string { return &s }
