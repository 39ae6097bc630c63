package domain

import "fmt"

// Choice is an edge leaving a Node.
// ID is unique within the owning Node only. Choices are comparable values,
// so == is structural equality.
type Choice struct {
	ID          int    `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	Destination string `json:"destination" yaml:"destination"`
}

func (c Choice) String() string {
	return fmt.Sprintf("%d. %s -> %s", c.ID, c.Text, c.Destination)
}
