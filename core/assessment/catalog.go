package assessment

type (
	// SubThemeDef is a catalog entry for a sub-theme within a policy theme.
	SubThemeDef struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	// ThemeDef is a catalog entry for one of the core SABER-ICT policy themes.
	ThemeDef struct {
		Code        string        `json:"code"`
		Name        string        `json:"name"`
		Description string        `json:"description"`
		SubThemes   []SubThemeDef `json:"sub_themes"`
	}

	// CrossCuttingDef is a catalog entry for a flat, theme-independent
	// policy dimension assessed alongside the core themes.
	CrossCuttingDef struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	// Catalog is the theme/sub-theme taxonomy new assessments are
	// initialized from. It is shared, read-only reference data.
	Catalog struct {
		Themes       []ThemeDef        `json:"themes"`
		CrossCutting []CrossCuttingDef `json:"cross_cutting"`
	}
)

// Theme returns the theme definition for the given code.
func (c Catalog) Theme(code string) (ThemeDef, bool) {
	for _, t := range c.Themes {
		if t.Code == code {
			return t, true
		}
	}
	return ThemeDef{}, false
}

var defaultCatalog = Catalog{
	Themes: []ThemeDef{
		{
			Code:        "1",
			Name:        "Vision and Planning",
			Description: "National and institutional vision for ICT in primary education and how it is planned and funded.",
			SubThemes: []SubThemeDef{
				{Code: "1.1", Name: "Vision Statement", Description: "An explicit, publicly stated vision for ICT use in education."},
				{Code: "1.2", Name: "Sector Plan Linkage", Description: "ICT plans linked to broader education sector plans and reforms."},
				{Code: "1.3", Name: "Funding and Budget", Description: "Dedicated, predictable budget lines for ICT in education."},
				{Code: "1.4", Name: "Institutional Coordination", Description: "Agencies and governance bodies coordinating ICT initiatives."},
			},
		},
		{
			Code:        "2",
			Name:        "ICT Infrastructure",
			Description: "Electricity, equipment, connectivity and the support required to keep them running.",
			SubThemes: []SubThemeDef{
				{Code: "2.1", Name: "Electricity", Description: "Reliable power supply at schools as a prerequisite for ICT use."},
				{Code: "2.2", Name: "Equipment and Connectivity", Description: "Availability of devices and internet access in classrooms."},
				{Code: "2.3", Name: "Technical Support and Maintenance", Description: "Arrangements for repairing and sustaining school ICT."},
			},
		},
		{
			Code:        "3",
			Name:        "Teachers",
			Description: "Preparing and supporting teachers to use ICT effectively in their practice.",
			SubThemes: []SubThemeDef{
				{Code: "3.1", Name: "Teacher Training", Description: "Pre-service and in-service training on pedagogical ICT use."},
				{Code: "3.2", Name: "Competency Standards", Description: "Defined ICT competency standards for teachers."},
				{Code: "3.3", Name: "Networks and Support", Description: "Communities of practice and ongoing support for teachers."},
				{Code: "3.4", Name: "School Leadership", Description: "Training for head teachers to lead ICT integration."},
			},
		},
		{
			Code:        "4",
			Name:        "Skills and Competencies",
			Description: "Digital skills students are expected to acquire and how they are defined.",
			SubThemes: []SubThemeDef{
				{Code: "4.1", Name: "Digital Literacy Curriculum", Description: "Digital literacy embedded in the primary curriculum."},
				{Code: "4.2", Name: "Student Competency Standards", Description: "Defined ICT competency targets for learners."},
				{Code: "4.3", Name: "Lifelong Learning Pathways", Description: "Pathways connecting school ICT skills to further learning."},
			},
		},
		{
			Code:        "5",
			Name:        "Learning Resources",
			Description: "Digital teaching and learning content and how it is produced and curated.",
			SubThemes: []SubThemeDef{
				{Code: "5.1", Name: "Digital Learning Content", Description: "Availability of curriculum-aligned digital content."},
				{Code: "5.2", Name: "Content Standards and Curation", Description: "Quality standards and curation of learning resources."},
				{Code: "5.3", Name: "Local Content Development", Description: "Capacity to produce content in local languages and contexts."},
			},
		},
		{
			Code:        "6",
			Name:        "EMIS",
			Description: "Education management information systems and the data they provide.",
			SubThemes: []SubThemeDef{
				{Code: "6.1", Name: "Data Collection Systems", Description: "Systems for collecting school and learner data."},
				{Code: "6.2", Name: "School-Level Reporting", Description: "Timely reporting of data back to schools."},
				{Code: "6.3", Name: "Data-Driven Decisions", Description: "Use of EMIS data in planning and management decisions."},
			},
		},
		{
			Code:        "7",
			Name:        "Monitoring and Evaluation",
			Description: "How ICT initiatives are monitored, evaluated and scaled.",
			SubThemes: []SubThemeDef{
				{Code: "7.1", Name: "M&E Framework", Description: "A framework with indicators for ICT in education."},
				{Code: "7.2", Name: "Impact Research", Description: "Research and evaluation of ICT impact on learning."},
				{Code: "7.3", Name: "Pilots and Scale-Up", Description: "Structured piloting and scaling of ICT initiatives."},
			},
		},
		{
			Code:        "8",
			Name:        "Equity, Inclusion and Safety",
			Description: "Ensuring ICT benefits reach all learners safely and fairly.",
			SubThemes: []SubThemeDef{
				{Code: "8.1", Name: "Gender Equity", Description: "Addressing gender gaps in access and use of ICT."},
				{Code: "8.2", Name: "Rural and Underserved Access", Description: "Reaching rural and marginalized schools."},
				{Code: "8.3", Name: "Learners with Disabilities", Description: "Assistive technologies and inclusive design."},
				{Code: "8.4", Name: "Child Online Protection", Description: "Policies protecting learners online."},
			},
		},
	},
	CrossCutting: []CrossCuttingDef{
		{Code: "CC.1", Name: "Distance and Blended Learning", Description: "Use of ICT for remote and hybrid instruction."},
		{Code: "CC.2", Name: "Open Educational Resources", Description: "Policies on openly licensed learning materials."},
		{Code: "CC.3", Name: "Digital Safety and Citizenship", Description: "Responsible and safe use of digital technologies."},
		{Code: "CC.4", Name: "Public-Private Partnerships", Description: "Engagement of the private sector in ICT provision."},
		{Code: "CC.5", Name: "Community Engagement", Description: "Involvement of parents and communities in school ICT."},
		{Code: "CC.6", Name: "Innovation and Emerging Technologies", Description: "Openness to new technologies and approaches."},
	},
}

// DefaultCatalog returns the built-in SABER-ICT taxonomy:
// 8 core themes and 6 cross-cutting themes.
func DefaultCatalog() Catalog {
	return defaultCatalog
}
