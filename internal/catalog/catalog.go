package catalog

import "fmt"

// Project is one civic project citizens can invest in. The catalog is fixed
// at build time.
type Project struct {
	Name        string
	Cost        int // estimated cost in rupees
	RewardCoins int // Civic Coins earned for funding the full cost
}

var projects = []Project{
	{Name: "Streetlight Repair on MG Road", Cost: 8000, RewardCoins: 500},
	{Name: "Community Park Restoration", Cost: 20000, RewardCoins: 1200},
	{Name: "Public Toilet Renovation", Cost: 15000, RewardCoins: 900},
}

// Len returns the number of projects in the catalog.
func Len() int {
	return len(projects)
}

// Get returns the project with the given 1-based number.
func Get(n int) (*Project, error) {
	if n < 1 || n > len(projects) {
		return nil, fmt.Errorf("project %d not in catalog (1..%d)", n, len(projects))
	}
	p := projects[n-1]
	return &p, nil
}

// All returns a copy of the catalog in listing order.
func All() []Project {
	out := make([]Project, len(projects))
	copy(out, projects)
	return out
}

// Reward computes the Civic Coins earned for a contribution towards p,
// using floor semantics on the real-valued ratio.
func (p *Project) Reward(contribution float64) int {
	return int(contribution / float64(p.Cost) * float64(p.RewardCoins))
}
