package content

// Copy shown on the resume page when the content document can't be read.
var (
	FallbackName = "Aziz ur Rehman Khan"

	FallbackTitle = "DevOps Engineer | Cloud & IaC Specialist"

	FallbackDescription = "Experienced DevOps Engineer with nearly 3 years of expertise in optimizing CI/CD " +
		"pipelines, ensuring application security, and delivering scalable solutions on AWS, GCP, and Azure. " +
		"Proficient in Terraform and Bicep for infrastructure as code (IaC), automating infrastructure, and " +
		"transitioning from monolithic to microservices architectures."

	FallbackContact = Contact{
		Email:    "azizurehmankhan.dev@gmail.com",
		GitHub:   "https://github.com/Aziz-ur-Rehman-Khan",
		LinkedIn: "https://www.linkedin.com/in/aziz-ur-rehman-khan/",
		Medium:   "https://medium.com/@azizr5050",
	}
)

// Resume is what the resume page renders: loaded content when available,
// otherwise the fallback hero and contact with no sections.
type Resume struct {
	Hero    Hero
	Contact Contact
	Loaded  bool
	Content *Content
}

// ResumeFrom builds the resume view. c may be nil. Empty hero or contact
// fields fall back individually.
func ResumeFrom(c *Content) Resume {
	r := Resume{
		Hero: Hero{
			Name:        FallbackName,
			Title:       FallbackTitle,
			Description: FallbackDescription,
		},
		Contact: FallbackContact,
	}
	if c == nil {
		return r
	}

	r.Loaded = true
	r.Content = c
	r.Hero.Name = orDefault(c.Hero.Name, r.Hero.Name)
	r.Hero.Title = orDefault(c.Hero.Title, r.Hero.Title)
	r.Hero.Subtitle = c.Hero.Subtitle
	r.Hero.Description = orDefault(c.Hero.Description, r.Hero.Description)
	r.Contact.Email = orDefault(c.Contact.Email, r.Contact.Email)
	r.Contact.GitHub = orDefault(c.Contact.GitHub, r.Contact.GitHub)
	r.Contact.LinkedIn = orDefault(c.Contact.LinkedIn, r.Contact.LinkedIn)
	r.Contact.Medium = orDefault(c.Contact.Medium, r.Contact.Medium)
	r.Contact.Phone = c.Contact.Phone
	r.Contact.Location = c.Contact.Location
	return r
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
