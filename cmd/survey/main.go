// Command survey records and analyses the BI tool usage survey.
package main

import "github.com/mesh-intelligence/bisurvey/internal/cli"

func main() {
	cli.Execute()
}
