package models

import "fmt"

// ChecklistItem is one boolean entry of a checklist group.
type ChecklistItem struct {
	Key         string
	Label       string
	Description string
}

// ChecklistGroupSpec describes one checklist group in declaration order.
type ChecklistGroupSpec struct {
	Key   string
	Title string
	Items []ChecklistItem
}

const (
	ChecklistGroupSecurity   = "security"
	ChecklistGroupSafety     = "safety"
	ChecklistGroupProcess    = "process"
	ChecklistGroupEscalation = "escalation"
)

// ChecklistCatalog is the fixed, ordered item catalog shared by the input form and the renderer.
// Order matters: documents list groups and items exactly as declared here.
var ChecklistCatalog = []ChecklistGroupSpec{
	{
		Key:   ChecklistGroupSecurity,
		Title: "Security Checklist",
		Items: []ChecklistItem{
			{Key: "identityVerified", Label: "Identity Verified", Description: "Vendor personnel identification has been checked and verified"},
			{Key: "accessArrangements", Label: "Access Arrangements", Description: "Access arrangements for restricted areas discussed and approved"},
			{Key: "cameraApproval", Label: "Camera Approval", Description: "Camera/recording devices usage approval discussed (if applicable)"},
			{Key: "escortArrangements", Label: "Escort Arrangements", Description: "Escort arrangements confirmed and understood"},
			{Key: "confidentialityAgreement", Label: "Confidentiality Agreement", Description: "Confidentiality requirements discussed and acknowledged"},
		},
	},
	{
		Key:   ChecklistGroupSafety,
		Title: "Safety Checklist",
		Items: []ChecklistItem{
			{Key: "siteInduction", Label: "Site Induction", Description: "Site safety induction completed"},
			{Key: "emergencyProcedures", Label: "Emergency Procedures", Description: "Emergency procedures explained and understood"},
			{Key: "firstAid", Label: "First Aid", Description: "First aid facilities pointed out"},
			{Key: "ppe", Label: "PPE Requirements", Description: "Personal Protective Equipment requirements explained"},
			{Key: "hazards", Label: "Hazards", Description: "Work area hazards identified and explained"},
			{Key: "reporting", Label: "Incident Reporting", Description: "Incident reporting procedures explained"},
			{Key: "evacuationRoutes", Label: "Evacuation Routes", Description: "Evacuation routes and assembly areas pointed out"},
		},
	},
	{
		Key:   ChecklistGroupProcess,
		Title: "MCM Process/Workscopes",
		Items: []ChecklistItem{
			{Key: "workscope", Label: "Workscope Definition", Description: "Clear definition of workscope provided and understood"},
			{Key: "boundaries", Label: "Boundaries", Description: "Work boundaries and limitations clearly defined"},
			{Key: "qualityExpectations", Label: "Quality Expectations", Description: "Quality expectations and standards clearly communicated"},
			{Key: "acceptanceCriteria", Label: "Acceptance Criteria", Description: "Acceptance criteria for completed work explained"},
		},
	},
	{
		Key:   ChecklistGroupEscalation,
		Title: "Escalation Process",
		Items: []ChecklistItem{
			{Key: "chain", Label: "Escalation Chain", Description: "Chain of escalation for issues clearly defined and communicated"},
		},
	},
}

// Flag returns the value of one checklist item.
func (g *ChecklistGroups) Flag(groupKey, itemKey string) (bool, error) {
	ptr, err := g.flagPtr(groupKey, itemKey)
	if err != nil {
		return false, err
	}
	return *ptr, nil
}

// SetFlag sets the value of one checklist item.
func (g *ChecklistGroups) SetFlag(groupKey, itemKey string, value bool) error {
	ptr, err := g.flagPtr(groupKey, itemKey)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

func (g *ChecklistGroups) flagPtr(groupKey, itemKey string) (*bool, error) {
	var flags map[string]*bool
	switch groupKey {
	case ChecklistGroupSecurity:
		flags = map[string]*bool{
			"identityVerified":         &g.Security.IdentityVerified,
			"accessArrangements":       &g.Security.AccessArrangements,
			"cameraApproval":           &g.Security.CameraApproval,
			"escortArrangements":       &g.Security.EscortArrangements,
			"confidentialityAgreement": &g.Security.ConfidentialityAgreement,
		}
	case ChecklistGroupSafety:
		flags = map[string]*bool{
			"siteInduction":       &g.Safety.SiteInduction,
			"emergencyProcedures": &g.Safety.EmergencyProcedures,
			"firstAid":            &g.Safety.FirstAid,
			"ppe":                 &g.Safety.PPE,
			"hazards":             &g.Safety.Hazards,
			"reporting":           &g.Safety.Reporting,
			"evacuationRoutes":    &g.Safety.EvacuationRoutes,
		}
	case ChecklistGroupProcess:
		flags = map[string]*bool{
			"workscope":           &g.Process.Workscope,
			"boundaries":          &g.Process.Boundaries,
			"qualityExpectations": &g.Process.QualityExpectations,
			"acceptanceCriteria":  &g.Process.AcceptanceCriteria,
		}
	case ChecklistGroupEscalation:
		flags = map[string]*bool{
			"chain": &g.Escalation.Chain,
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChecklistItem, groupKey)
	}
	ptr, ok := flags[itemKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownChecklistItem, groupKey, itemKey)
	}
	return ptr, nil
}
