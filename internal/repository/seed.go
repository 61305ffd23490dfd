package repository

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// Demo credentials are hashed at the minimum cost so seeding stays fast.
const seedHashCost = bcrypt.MinCost

var seedEpoch = at("2024-09-01T08:00:00Z")

func at(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(v float64) *float64 { return &v }

// SeedFacilities returns the initial facility table.
func SeedFacilities() []models.Facility {
	rows := []models.Facility{
		{ID: "fac-001", Name: "MUHABURA", Type: models.FacilityClassroom, Location: "Main Building, Ground Floor", Capacity: 200, CurrentOccupancy: 150, Department: "Computer Science", Status: models.FacilityOperational, LastMaintenanceDate: "2024-12-15", Features: []string{"Projector", "Lighting", "Smart Board"}, Description: "Largest lecture hall on campus, used for major presentations and events."},
		{ID: "fac-002", Name: "kalisimbi Computer Lab 3f 10", Type: models.FacilityLaboratory, Location: "ICT Building, First Floor", Capacity: 50, CurrentOccupancy: 45, Department: "Computer Science", Status: models.FacilityOperational, LastMaintenanceDate: "2025-01-10", Features: []string{"30 Computers", "Software Development Tools", "Networking Equipment"}, Description: "Primary computer lab for programming classes and software development."},
		{ID: "fac-003", Name: "kalisimbi Chemistry Laboratory", Type: models.FacilityLaboratory, Location: "Science Building, Second Floor", Capacity: 40, CurrentOccupancy: 20, Department: "Chemistry", Status: models.FacilityMaintenance, LastMaintenanceDate: "2024-11-05", Features: []string{"Chemical Storage", "Fume Hoods", "Safety Equipment"}, Description: "Used for undergraduate chemistry experiments and research."},
		{ID: "fac-004", Name: "Main Library", Type: models.FacilityLibrary, Location: "Campus Library Building", Capacity: 300, CurrentOccupancy: 210, Status: models.FacilityOperational, LastMaintenanceDate: "2024-12-20", Features: []string{"Study Areas", "Computer Terminals", "Book Collection", "Online Journals Access"}, Description: "Main university library with extensive collection and study spaces."},
		{ID: "fac-005", Name: "Sports play ground", Type: models.FacilityRecreational, Location: "Central Campus", Capacity: 150, CurrentOccupancy: 75, Status: models.FacilityOperational, Features: []string{"Basketball Court", "Fitness Center", "Volleyball"}, Description: "Primary sports and recreation facility for students and staff."},
		{ID: "fac-006", Name: "Dusaidi Hostel A", Type: models.FacilityHostel, Location: "At entry of Campus", Capacity: 200, CurrentOccupancy: 190, Status: models.FacilityOperational, LastMaintenanceDate: "2024-12-01", Features: []string{"Double Rooms", "Common toilets", "Study Areas", "Wifi"}, Description: "Primary student accommodation with modern amenities."},
		{ID: "fac-007", Name: "Administration Office Building", Type: models.FacilityOffice, Location: "Central Campus", Capacity: 50, CurrentOccupancy: 45, Status: models.FacilityOperational, Features: []string{"Private Offices", "Conference Rooms", "Administrative Support"}, Description: "Houses faculty offices and administrative staff."},
		{ID: "fac-008", Name: "Student Center Cafeteria, and Restaurent", Type: models.FacilityCafeteria, Location: "Student Center, Ground Floor", Capacity: 120, CurrentOccupancy: 85, Status: models.FacilityOperational, LastMaintenanceDate: "2025-01-05", Features: []string{"Food Service", "Seating Area", "Vending Machines"}, Description: "Main dining facility for students and staff."},
		{ID: "fac-009", Name: "Engineering Workshop", Type: models.FacilityLaboratory, Location: "Engineering Building, Ground Floor", Capacity: 35, CurrentOccupancy: 20, Department: "Engineering", Status: models.FacilityOperational, LastMaintenanceDate: "2024-11-20", Features: []string{"Heavy Machinery", "Fabrication Tools", "Safety Equipment"}, Description: "Workshop for engineering students to build and test projects."},
		{ID: "fac-010", Name: "ClassRoom B", Type: models.FacilityClassroom, Location: "MUHABURA Building, Second Floor", Capacity: 40, CurrentOccupancy: 35, Department: "Geology", Status: models.FacilityOperational, Features: []string{"Whiteboard", "Projector"}, Description: "Lecture room for smaller classes and seminars."},
		{ID: "fac-011", Name: "Class Room c", Type: models.FacilityClassroom, Location: "Sabyinyo Building, 1st Floor", Capacity: 40, CurrentOccupancy: 35, Department: "Geology", Status: models.FacilityOperational, Features: []string{"doors", "WIndow"}, Description: "Lecture room for smaller classes and seminars."},
	}
	for i := range rows {
		rows[i].CreatedAt = seedEpoch
		rows[i].UpdatedAt = seedEpoch
	}
	return rows
}

// SeedUsers returns the initial user directory. Records 4 to 9 carry no
// explicit status and are therefore active.
func SeedUsers() []models.User {
	rows := []models.User{
		{ID: "1", Name: "CAMPUS PLANNER", Email: "admin@ur.ac.rw", Role: models.RoleAdmin, Department: "Management", Status: models.UserStatusActive},
		{ID: "2", Name: "Karangwa", Email: "karangwa.staff@ur.ac.rw", Role: models.RoleStaff, Department: "Computer Science", Status: models.UserStatusActive},
		{ID: "3", Name: "Simon Pierre", Email: "simon@ur.ac.rw", Role: models.RoleStudent, Status: models.UserStatusActive},
		{ID: "4", Name: "Manyanga", Email: "manyanga@ur.ac.rw", Role: models.RoleStudent},
		{ID: "5", Name: "Jane Kamikazi", Email: "jane.smith@ur.ac.rw", Role: models.RoleStaff, Department: "Engineering"},
		{ID: "6", Name: "David Rucamumakuba", Email: "david.johnson@ur.ac.rw", Role: models.RoleStudent},
		{ID: "7", Name: "Emily Niyonsaba", Email: "emily.davis@ur.ac.rw", Role: models.RoleStudent},
		{ID: "8", Name: "Michael Kananga", Email: "michael.brown@ur.ac.rw", Role: models.RoleStaff, Department: "Chemistry"},
		{ID: "9", Name: "Sarah Uwimana", Email: "sarah.wilson@ur.ac.rw", Role: models.RoleAdmin, Department: "IT Services"},
	}
	passwords := map[string]string{"1": "AdminPassword"}
	for i := range rows {
		pw, ok := passwords[rows[i].ID]
		if !ok {
			pw = "password"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), seedHashCost)
		if err != nil {
			panic(err)
		}
		rows[i].PasswordHash = string(hash)
		rows[i].CreatedAt = seedEpoch
		rows[i].UpdatedAt = seedEpoch
	}
	return rows
}

// SeedAssignments links staff to facilities outside their own department.
// The Computer Science demo account has none, so it sees department facilities only.
func SeedAssignments() []models.FacilityAssignment {
	return []models.FacilityAssignment{
		{StaffID: "8", FacilityID: "fac-004", AssignedAt: seedEpoch},
		{StaffID: "5", FacilityID: "fac-005", AssignedAt: seedEpoch},
		{StaffID: "8", FacilityID: "fac-009", AssignedAt: seedEpoch},
	}
}

// SeedFeedback returns the initial feedback table.
func SeedFeedback() []models.FeedbackItem {
	return []models.FeedbackItem{
		{ID: "fb-001", UserID: "3", UserName: "Simon Pierre", UserRole: models.RoleStudent, FacilityID: "fac-001", FacilityName: "MUHABURA", Description: "The projector is flickering and making it difficult to see presentations.", Urgency: models.UrgencyHigh, Status: models.FeedbackInProgress, Category: models.CategoryEquipment, CreatedAt: at("2025-02-15T10:30:00Z"), AssignedTo: "2",
			Comments: []models.Comment{{ID: "c1", UserID: "2", UserName: "Karangwa", Text: "We've ordered a replacement bulb. Should be fixed by next week.", CreatedAt: at("2025-02-16T14:20:00Z")}}},
		{ID: "fb-002", UserID: "3", UserName: "Simon Pierre", UserRole: models.RoleStudent, FacilityID: "fac-002", FacilityName: "kalisimbi Computer Lab 3f 10", Description: "Five computers in the back row are not turning on.", Urgency: models.UrgencyMedium, Status: models.FeedbackPending, Category: models.CategoryEquipment, CreatedAt: at("2025-02-17T09:15:00Z")},
		{ID: "fb-003", UserID: "2", UserName: "Karangwa", UserRole: models.RoleStaff, FacilityID: "fac-005", FacilityName: "Sports play ground", Description: "The swimming pool water needs to be changed. It appears cloudy.", Urgency: models.UrgencyMedium, Status: models.FeedbackResolved, Category: models.CategoryMaintenance, CreatedAt: at("2025-02-10T11:45:00Z"), ResolvedAt: ptrTime(at("2025-02-12T15:30:00Z")),
			Comments: []models.Comment{
				{ID: "c2", UserID: "1", UserName: "CAMPUS PLANNER", Text: "Maintenance team has been notified. They will address this tomorrow.", CreatedAt: at("2025-02-10T13:20:00Z")},
				{ID: "c3", UserID: "2", UserName: "Karangwa", Text: "Thank you for the quick response.", CreatedAt: at("2025-02-10T14:05:00Z")},
			}},
		{ID: "fb-004", UserID: "3", UserName: "Simon Pierre", UserRole: models.RoleStudent, FacilityID: "fac-006", FacilityName: "Dusaidi Hostel A", Description: "The common kitchen microwave is not working.", Urgency: models.UrgencyLow, Status: models.FeedbackResolved, Category: models.CategoryEquipment, CreatedAt: at("2025-02-05T16:20:00Z"), ResolvedAt: ptrTime(at("2025-02-08T10:15:00Z"))},
		{ID: "fb-005", UserID: "3", UserName: "Simon Pierre", UserRole: models.RoleStudent, FacilityID: "fac-004", FacilityName: "Main Library", Description: "The air conditioning in the study area is too cold.", Urgency: models.UrgencyLow, Status: models.FeedbackPending, Category: models.CategoryTemperature, CreatedAt: at("2025-02-18T13:40:00Z")},
		{ID: "fb-006", UserID: "2", UserName: "Karangwa", UserRole: models.RoleStaff, FacilityID: "fac-003", FacilityName: "kalisimbi Chemistry Laboratory", Description: "One of the fume hoods is not functioning properly.", Urgency: models.UrgencyHigh, Status: models.FeedbackInProgress, Category: models.CategoryEquipment, CreatedAt: at("2025-02-16T08:30:00Z"), AssignedTo: "1"},
		{ID: "fb-007", UserID: "3", UserName: "Simon Pierre", UserRole: models.RoleStudent, FacilityID: "fac-008", FacilityName: "Student Center Cafeteria, and Restaurent", Description: "The cafeteria is not being cleaned properly at the end of the day.", Urgency: models.UrgencyMedium, Status: models.FeedbackPending, Category: models.CategoryCleanliness, CreatedAt: at("2025-02-17T17:10:00Z")},
		{ID: "fb-008", UserID: "2", UserName: "Karangwa", UserRole: models.RoleStaff, FacilityID: "fac-010", FacilityName: "ClassRoom B", Description: "There's excessive noise from construction outside that disrupts classes.", Urgency: models.UrgencyMedium, Status: models.FeedbackInProgress, Category: models.CategoryNoise, CreatedAt: at("2025-02-15T11:20:00Z"), AssignedTo: "1"},
	}
}

// SeedRecommendations returns the initial AI recommendation table.
func SeedRecommendations() []models.AIRecommendation {
	rows := []models.AIRecommendation{
		{ID: "ai-001", Title: "Expand Computer Lab A capacity", Description: "Based on current utilization patterns, Computer Lab A is consistently at 90% capacity during peak hours. Recommend expanding capacity by 20% by reorganizing workstations and adding 10 new computers.", Type: models.RecommendationExpansion, Impact: models.ImpactHigh, Status: models.RecommendationPending, CreatedAt: at("2025-02-10T08:30:00Z"), FacilityID: "fac-002", FacilityName: "kalisimbi Computer Lab 3f 10", Department: "Computer Science",
			Savings: &models.Savings{Cost: 0, Space: -50, Time: 120}, Implementation: &models.Implementation{Difficulty: "medium", TimeFrame: "short-term", EstimatedCost: ptrFloat(15000)}, AIConfidence: 92},
		{ID: "ai-002", Title: "Optimize Main Lecture Hall scheduling", Description: "Analysis shows the Main Lecture Hall is underutilized during early morning hours (8:00-10:00 AM) but over-scheduled during mid-day. Recommend shifting 30% of mid-day classes to morning slots to balance utilization.", Type: models.RecommendationScheduling, Impact: models.ImpactMedium, Status: models.RecommendationApproved, CreatedAt: at("2025-02-05T14:15:00Z"), FacilityID: "fac-001", FacilityName: "MUHABURA",
			Savings: &models.Savings{Cost: 5000}, Implementation: &models.Implementation{Difficulty: "easy", TimeFrame: "immediate"}, AIConfidence: 88,
			ReviewComments: []models.Comment{{ID: "rc-001", UserID: "1", UserName: "CAMPUS PLANNER", Text: "This is a good suggestion. We'll implement it in the next semester schedule.", CreatedAt: at("2025-02-06T09:20:00Z")}}},
		{ID: "ai-003", Title: "Maintenance schedule adjustment for Chemistry Laboratory", Description: "Current maintenance schedule conflicts with high-demand periods. Recommend shifting maintenance to weekend hours when utilization is 75% lower.", Type: models.RecommendationMaintenance, Impact: models.ImpactMedium, Status: models.RecommendationFlagged, CreatedAt: at("2025-02-12T10:45:00Z"), FacilityID: "fac-003", FacilityName: "kalisimbi Chemistry Laboratory", Department: "Chemistry",
			Savings: &models.Savings{Time: 48}, Implementation: &models.Implementation{Difficulty: "easy", TimeFrame: "immediate"}, AIConfidence: 95,
			ReviewComments: []models.Comment{{ID: "rc-002", UserID: "2", UserName: "Karangwa", Text: "Need to check if maintenance staff is available on weekends before approving.", CreatedAt: at("2025-02-13T11:30:00Z")}}},
		{ID: "ai-004", Title: "Convert underutilized storage space to additional study areas", Description: "Storage room adjacent to the Central Library is used at less than 40% capacity. Given high demand for study spaces, recommend converting 60% of this space to create 3 new group study rooms.", Type: models.RecommendationRelocation, Impact: models.ImpactHigh, Status: models.RecommendationPending, CreatedAt: at("2025-02-14T09:10:00Z"), FacilityID: "fac-004", FacilityName: "Main Library",
			Savings: &models.Savings{Space: 400, Time: 360}, Implementation: &models.Implementation{Difficulty: "medium", TimeFrame: "short-term", EstimatedCost: ptrFloat(25000)}, AIConfidence: 84},
		{ID: "ai-005", Title: "Install smart lighting and temperature controls in Student Hostel A", Description: "Energy usage analysis shows Student Hostel A consumes 30% more electricity than average. Recommend installing smart controls to optimize lighting and temperature, with an estimated ROI within 14 months.", Type: models.RecommendationOptimization, Impact: models.ImpactMedium, Status: models.RecommendationRejected, CreatedAt: at("2025-02-08T13:20:00Z"), FacilityID: "fac-006", FacilityName: "Dusaidi Hostel A",
			Savings: &models.Savings{Cost: 12000}, Implementation: &models.Implementation{Difficulty: "medium", TimeFrame: "short-term", EstimatedCost: ptrFloat(18000)}, AIConfidence: 90,
			ReviewComments: []models.Comment{{ID: "rc-003", UserID: "1", UserName: "CAMPUS PLANNER", Text: "Budget constraints require postponing this to next fiscal year.", CreatedAt: at("2025-02-09T10:15:00Z")}}},
		{ID: "ai-006", Title: "Reallocate Faculty Office Building space", Description: "Office utilization study shows 25% of offices are used less than 2 days per week. Recommend implementing shared office model for part-time faculty to free up 8 offices for other purposes.", Type: models.RecommendationOptimization, Impact: models.ImpactMedium, Status: models.RecommendationPending, CreatedAt: at("2025-02-15T11:30:00Z"), FacilityID: "fac-007", FacilityName: "Administration Office Building",
			Savings: &models.Savings{Space: 600}, Implementation: &models.Implementation{Difficulty: "complex", TimeFrame: "long-term"}, AIConfidence: 78},
		{ID: "ai-007", Title: "Upgrade Engineering Workshop safety equipment", Description: "Predictive maintenance analysis indicates 60% of safety equipment will reach end-of-life within 6 months. Recommend proactive replacement to avoid disruption during mid-semester.", Type: models.RecommendationMaintenance, Impact: models.ImpactHigh, Status: models.RecommendationFlagged, CreatedAt: at("2025-02-16T09:45:00Z"), FacilityID: "fac-009", FacilityName: "Engineering Workshop", Department: "Engineering",
			Implementation: &models.Implementation{Difficulty: "medium", TimeFrame: "short-term", EstimatedCost: ptrFloat(35000)}, AIConfidence: 96,
			ReviewComments: []models.Comment{{ID: "rc-004", UserID: "2", UserName: "Karangwa", Text: "This is critical. We should prioritize this replacement.", CreatedAt: at("2025-02-16T14:20:00Z")}}},
		{ID: "ai-008", Title: "Reduce staffing in Student Center Cafeteria during off-peak hours", Description: "Footfall analysis shows staffing levels can be reduced by 40% between 2:00-4:00 PM without affecting service quality, resulting in significant cost savings.", Type: models.RecommendationOptimization, Impact: models.ImpactLow, Status: models.RecommendationApproved, CreatedAt: at("2025-02-07T15:20:00Z"), FacilityID: "fac-008", FacilityName: "Student Center Cafeteria, and Restaurent",
			Savings: &models.Savings{Cost: 15000}, Implementation: &models.Implementation{Difficulty: "easy", TimeFrame: "immediate"}, AIConfidence: 89},
	}
	for i := range rows {
		rows[i].UpdatedAt = rows[i].CreatedAt
	}
	return rows
}

// SeedPredictions returns the prediction templates.
func SeedPredictions() []models.InfrastructurePrediction {
	type p = models.InfrastructurePrediction
	type d = models.PredictionDetails
	type f = models.ImpactFactors
	return []p{
		{ID: "pred-001", Title: "Classroom Expansion Needed by 2026", Year: 2026, ProjectedStudentCount: 3500, CurrentCapacity: 2800, RecommendedCapacity: 3600, InfrastructureType: models.InfraClassroom, Priority: models.PriorityHigh,
			Details: d{CurrentUtilization: 86, ProjectedUtilization: 107, RecommendedAction: "expand", EstimatedCost: 450000, SpaceNeeded: 4500}, ImpactFactors: f{StudentGrowth: 12.5, UtilizationTrend: 8.3, FeedbackScore: 76, MaintenanceStatus: "good"}, AIConfidence: 92, CreatedAt: at("2025-04-12T08:30:00Z")},
		{ID: "pred-002", Title: "Parking Capacity Shortfall Expected by 2027", Year: 2027, ProjectedStudentCount: 3800, CurrentCapacity: 420, RecommendedCapacity: 580, InfrastructureType: models.InfraParking, Priority: models.PriorityMedium,
			Details: d{CurrentUtilization: 92, ProjectedUtilization: 118, RecommendedAction: "build", EstimatedCost: 280000, SpaceNeeded: 12000}, ImpactFactors: f{StudentGrowth: 8.5, UtilizationTrend: 15.2, FeedbackScore: 68, MaintenanceStatus: "fair"}, AIConfidence: 88, CreatedAt: at("2025-04-10T13:45:00Z")},
		{ID: "pred-003", Title: "Additional Student Hostels Required by 2026", Year: 2026, ProjectedStudentCount: 3500, CurrentCapacity: 1200, RecommendedCapacity: 1500, InfrastructureType: models.InfraHostel, Priority: models.PriorityCritical,
			Details: d{CurrentUtilization: 98, ProjectedUtilization: 125, RecommendedAction: "build", EstimatedCost: 1800000, SpaceNeeded: 25000}, ImpactFactors: f{StudentGrowth: 12.5, UtilizationTrend: 10.8, FeedbackScore: 62, MaintenanceStatus: "fair"}, AIConfidence: 94, CreatedAt: at("2025-04-08T11:20:00Z")},
		{ID: "pred-004", Title: "Library Expansion Recommended by 2027", Year: 2027, ProjectedStudentCount: 3800, CurrentCapacity: 600, RecommendedCapacity: 750, InfrastructureType: models.InfraLibrary, Priority: models.PriorityMedium,
			Details: d{CurrentUtilization: 87, ProjectedUtilization: 104, RecommendedAction: "expand", EstimatedCost: 650000, SpaceNeeded: 5800}, ImpactFactors: f{StudentGrowth: 8.5, UtilizationTrend: 7.2, FeedbackScore: 82, MaintenanceStatus: "good"}, AIConfidence: 86, CreatedAt: at("2025-04-05T09:15:00Z")},
		{ID: "pred-005", Title: "Laboratory Modernization and Expansion by 2026", Year: 2026, ProjectedStudentCount: 3500, CurrentCapacity: 850, RecommendedCapacity: 950, InfrastructureType: models.InfraLab, Priority: models.PriorityHigh,
			Details: d{CurrentUtilization: 91, ProjectedUtilization: 108, RecommendedAction: "renovate", EstimatedCost: 780000, SpaceNeeded: 2800}, ImpactFactors: f{StudentGrowth: 12.5, UtilizationTrend: 9.4, FeedbackScore: 74, MaintenanceStatus: "fair"}, AIConfidence: 90, CreatedAt: at("2025-04-14T10:30:00Z")},
		{ID: "pred-006", Title: "Restaurant Capacity Increase Needed by 2027", Year: 2027, ProjectedStudentCount: 3800, CurrentCapacity: 350, RecommendedCapacity: 480, InfrastructureType: models.InfraRestaurant, Priority: models.PriorityMedium,
			Details: d{CurrentUtilization: 95, ProjectedUtilization: 115, RecommendedAction: "expand", EstimatedCost: 320000, SpaceNeeded: 3200}, ImpactFactors: f{StudentGrowth: 8.5, UtilizationTrend: 12.3, FeedbackScore: 71, MaintenanceStatus: "good"}, AIConfidence: 89, CreatedAt: at("2025-04-07T14:20:00Z")},
		{ID: "pred-007", Title: "Office Space Optimization Required by 2026", Year: 2026, ProjectedStudentCount: 3500, CurrentCapacity: 180, RecommendedCapacity: 210, InfrastructureType: models.InfraOffice, Priority: models.PriorityLow,
			Details: d{CurrentUtilization: 82, ProjectedUtilization: 98, RecommendedAction: "optimize", EstimatedCost: 120000, SpaceNeeded: 1500}, ImpactFactors: f{StudentGrowth: 12.5, UtilizationTrend: 5.8, FeedbackScore: 79, MaintenanceStatus: "excellent"}, AIConfidence: 84, CreatedAt: at("2025-04-09T11:45:00Z")},
	}
}

// SeedDatasets returns the external campus planning datasets.
func SeedDatasets() []models.CampusDataset {
	return []models.CampusDataset{
		{ID: "ds-001", Name: "US Public Universities Space Planning 2020-2023", Description: "Comprehensive space utilization and planning data from 50 major public universities in the United States", Source: "National Center for Education Statistics", LastUpdated: "2023-12-10",
			Metrics: models.DatasetMetrics{StudentGrowthRate: 2.7, AverageUtilization: 68.4, InfrastructureExpansionRate: 1.8}, DataPoints: 4250, Tags: []string{"public", "universities", "space utilization", "classroom planning"}},
		{ID: "ds-002", Name: "Higher Education Facilities Growth Trends", Description: "Analysis of facility expansion patterns across 120 educational institutions over 5 years", Source: "Society for College and University Planning", LastUpdated: "2024-02-15",
			Metrics: models.DatasetMetrics{StudentGrowthRate: 3.1, AverageUtilization: 71.2, InfrastructureExpansionRate: 2.2}, DataPoints: 3840, Tags: []string{"growth trends", "facilities", "expansion", "higher education"}},
		{ID: "ds-003", Name: "African Universities Infrastructure Development 2022", Description: "Infrastructure development patterns and student population trends across African universities", Source: "African Higher Education Development Association", LastUpdated: "2023-08-22",
			Metrics: models.DatasetMetrics{StudentGrowthRate: 4.3, AverageUtilization: 82.7, InfrastructureExpansionRate: 3.5}, DataPoints: 1875, Tags: []string{"african universities", "infrastructure", "development", "population trends"}},
		{ID: "ds-004", Name: "Campus Sustainability & Space Efficiency Report", Description: "Data on sustainable infrastructure planning and space efficiency metrics from global educational institutions", Source: "International Sustainable Campus Network", LastUpdated: "2024-01-07",
			Metrics: models.DatasetMetrics{StudentGrowthRate: 1.9, AverageUtilization: 74.6, InfrastructureExpansionRate: 1.2}, DataPoints: 2930, Tags: []string{"sustainability", "space efficiency", "green campus", "resource utilization"}},
	}
}

// SeedReports returns the two sample reports dated relative to now.
func SeedReports(now time.Time) []models.Report {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	fortnightAgo := now.Add(-14 * 24 * time.Hour)
	return []models.Report{
		{ID: "user-report-1", Title: "Student Feedback Analysis - Engineering Department", Description: "Analysis of student feedback for the Engineering department facilities", Type: models.ReportFeedback, Department: "Engineering", Author: "Karangwa", AuthorID: "2", DownloadCount: 3, Status: models.ReportCompleted, Format: models.ReportFormatCSV, CreatedAt: weekAgo, CompletedAt: ptrTime(weekAgo)},
		{ID: "user-report-2", Title: "Computer Lab Usage Patterns", Description: "Detailed analysis of computer lab usage patterns over the past semester", Type: models.ReportUsage, Department: "Computer Science", Author: "Karangwa", AuthorID: "2", DownloadCount: 1, Status: models.ReportCompleted, Format: models.ReportFormatCSV, CreatedAt: fortnightAgo, CompletedAt: ptrTime(fortnightAgo)},
	}
}

// SeedAnnouncements returns the campus updates feed.
func SeedAnnouncements() []models.Announcement {
	return []models.Announcement{
		{ID: "1", Title: "Library Hours Extended", Category: models.AnnouncementOperations, Content: "Based on student feedback and AI analysis, the main library will now stay open until 10 PM on weekdays. This change aims to accommodate evening study sessions and provide more flexible access to library resources for students with afternoon classes. This extended schedule will begin next Monday.", PublishedAt: at("2025-04-25T00:00:00Z"), Facility: "Main Library", Important: true, CreatedBy: "Dr. James Wilson, Library Director"},
		{ID: "2", Title: "New Study Spaces Available", Category: models.AnnouncementExpansion, Content: "10 new individual study pods have been added to the Science Building based on space utilization data. These pods are equipped with power outlets, USB ports, and adjustable lighting. Booking can be done through the campus app or at the Science Building reception desk.", PublishedAt: at("2025-04-22T00:00:00Z"), Facility: "Science Building", CreatedBy: "Campus Planning Committee"},
		{ID: "3", Title: "Computer Lab Maintenance", Category: models.AnnouncementMaintenance, Content: "The Computer Science lab will be closed this weekend for system upgrades and maintenance. All computers will be updated with the latest software versions and security patches. The lab will reopen on Monday morning at 8 AM.", PublishedAt: at("2025-04-20T00:00:00Z"), Facility: "Computer Science Building", Important: true, CreatedBy: "IT Department"},
		{ID: "4", Title: "Cafeteria Menu Changes", Category: models.AnnouncementOperations, Content: "Based on student feedback, the campus cafeteria will be introducing more vegetarian and vegan options starting next week. The new menu includes a daily plant-based special and expanded salad bar options.", PublishedAt: at("2025-04-15T00:00:00Z"), Facility: "Main Cafeteria", CreatedBy: "Food Services"},
		{ID: "5", Title: "Engineering Building Renovation", Category: models.AnnouncementRenovation, Content: "The west wing of the Engineering Building will undergo renovations from May 1st to July 15th. During this period, classes will be temporarily relocated to the Science Building. The renovation will add new lab spaces and update existing facilities with modern equipment.", PublishedAt: at("2025-04-10T00:00:00Z"), Facility: "Engineering Building", Important: true, CreatedBy: "Campus Development Office"},
		{ID: "6", Title: "Student Lounge Addition", Category: models.AnnouncementExpansion, Content: "A new student lounge will open in the Business School building next month. The space will feature comfortable seating, charging stations, a small kitchenette, and group study areas that can be reserved through the campus app.", PublishedAt: at("2025-04-08T00:00:00Z"), Facility: "Business School", CreatedBy: "Student Affairs Office"},
		{ID: "7", Title: "Parking Lot Closure", Category: models.AnnouncementMaintenance, Content: "The north parking lot will be closed for resurfacing from April 30th to May 2nd. Alternative parking is available in the east and west lots during this period. We apologize for any inconvenience this may cause.", PublishedAt: at("2025-04-05T00:00:00Z"), Facility: "North Campus", Important: true, CreatedBy: "Facilities Management"},
	}
}
