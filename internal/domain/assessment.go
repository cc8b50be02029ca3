package domain

import "time"

// FlexibilityAssessment records the mobility screen taken during intake.
type FlexibilityAssessment struct {
	ID                   int64     `db:"id" json:"id"`
	ClientID             int64     `db:"client_id" json:"clientId"`
	ShoulderFlexibility  string    `db:"shoulder_flexibility" json:"shoulderFlexibility"`
	LowerBodyFlexibility string    `db:"lower_body_flexibility" json:"lowerBodyFlexibility"`
	JointMobility        string    `db:"joint_mobility" json:"jointMobility"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// BeginnerAssessment holds baseline tests for new or returning exercisers.
type BeginnerAssessment struct {
	ID                 int64     `db:"id" json:"id"`
	ClientID           int64     `db:"client_id" json:"clientId"`
	BasicTechnique     string    `db:"basic_technique" json:"basicTechnique"`
	ChairSitToStand    int       `db:"chair_sit_to_stand" json:"chairSitToStand"`
	ArmCurl            int       `db:"arm_curl" json:"armCurl"`
	BalanceTestResults string    `db:"balance_test_results" json:"balanceTestResults"`
	CardioTest         string    `db:"cardio_test" json:"cardioTest"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// AdvancedAssessment holds strength and conditioning tests for trained clients.
type AdvancedAssessment struct {
	ID                int64     `db:"id" json:"id"`
	ClientID          int64     `db:"client_id" json:"clientId"`
	AdvancedTechnique string    `db:"advanced_technique" json:"advancedTechnique"`
	StrengthMax       string    `db:"strength_max" json:"strengthMax"`
	StrengthEndurance string    `db:"strength_endurance" json:"strengthEndurance"`
	Circuit           string    `db:"circuit" json:"circuit"`
	ModerateCardio    string    `db:"moderate_cardio" json:"moderateCardio"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
