// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SampleDocument returns a small master résumé used by `init` and by tests
func SampleDocument() *Document {
	return &Document{
		Meta: Meta{
			ID:            "resume-1",
			Name:          "Sample Resume",
			CreatedAt:     "2025-01-01T00:00:00Z",
			UpdatedAt:     "2025-01-01T00:00:00Z",
			SchemaVersion: CurrentSchemaVersion,
		},
		Contact: ContactInfo{
			Name:     "Alex Candidate",
			Email:    "alex@example.com",
			Phone:    "+1 (555) 010-0100",
			LinkedIn: "https://www.linkedin.com/in/alex-candidate/",
			GitHub:   "https://github.com/alex-candidate",
			Location: "New York, NY",
		},
		Sections: []Section{
			{
				ID:           "section-education",
				Kind:         KindEducation,
				Title:        "Education",
				Enabled:      true,
				DisplayOrder: 0,
				Entries: []Entry{
					{
						ID:           "edu-1",
						Enabled:      true,
						DisplayOrder: 0,
						Data: EducationData{
							Institution: "State University",
							Degree:      "Master of Science",
							Field:       "Computer Science",
							StartDate:   "Aug 2022",
							EndDate:     "May 2024",
							GPA:         "3.9/4.0",
							Location:    "New York",
						},
						BulletPoints: []BulletPoint{
							{ID: "edu-1-bp-1", Text: "Coursework: Distributed Systems, Machine Learning", Enabled: true, DisplayOrder: 0},
						},
					},
				},
			},
			{
				ID:           "section-experience",
				Kind:         KindExperience,
				Title:        "Work Experience",
				Enabled:      true,
				DisplayOrder: 1,
				Entries: []Entry{
					{
						ID:           "exp-1",
						Enabled:      true,
						DisplayOrder: 0,
						Data: ExperienceData{
							Company:   "Acme Corp",
							Title:     "Software Engineer",
							StartDate: "Jun 2024",
							EndDate:   "Present",
							Location:  "New York, NY",
						},
						BulletPoints: []BulletPoint{
							{ID: "exp-1-bp-1", Text: "Built a \\textbf{Go} ingestion service processing 5M events/day.", Enabled: true, DisplayOrder: 0},
							{ID: "exp-1-bp-2", Text: "Cut p99 API latency by 40\\% with targeted caching.", Enabled: true, DisplayOrder: 1},
						},
					},
					{
						ID:           "exp-2",
						Enabled:      true,
						DisplayOrder: 1,
						Data: ExperienceData{
							Company:   "Initech",
							Title:     "Software Engineering Intern",
							StartDate: "May 2023",
							EndDate:   "Aug 2023",
						},
						BulletPoints: []BulletPoint{
							{ID: "exp-2-bp-1", Text: "Migrated nightly reports from cron scripts to \\textbf{Airflow}.", Enabled: true, DisplayOrder: 0},
						},
					},
				},
			},
			{
				ID:           "section-projects",
				Kind:         KindProjects,
				Title:        "Projects",
				Enabled:      true,
				DisplayOrder: 2,
				Entries: []Entry{
					{
						ID:           "proj-1",
						Enabled:      true,
						DisplayOrder: 0,
						Data: ProjectData{
							Name:      "tinykv",
							URL:       "https://github.com/alex-candidate/tinykv",
							StartDate: "2023",
							EndDate:   "2023",
						},
						BulletPoints: []BulletPoint{
							{ID: "proj-1-bp-1", Text: "Raft-replicated key-value store with linearizable reads.", Enabled: true, DisplayOrder: 0},
						},
					},
				},
			},
			{
				ID:           "section-skills",
				Kind:         KindSkills,
				Title:        "Technical Skills",
				Enabled:      true,
				DisplayOrder: 3,
				Entries: []Entry{
					{
						ID:           "skills-1",
						Enabled:      true,
						DisplayOrder: 0,
						Data: SkillsData{
							Category:       "Languages",
							Items:          "Go, Python, SQL",
							AvailableItems: "Go, Python, SQL, Java, TypeScript",
						},
					},
				},
			},
			{
				ID:           "section-achievements",
				Kind:         KindAchievements,
				Title:        "Achievements",
				Enabled:      false,
				DisplayOrder: 4,
				Entries: []Entry{
					{
						ID:           "ach-1",
						Enabled:      true,
						DisplayOrder: 0,
						Data:         AchievementData{Description: "Winner, University Hackathon 2023"},
					},
				},
			},
		},
	}
}
