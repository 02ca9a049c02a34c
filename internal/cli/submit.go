package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Saved is the confirmation shown after a response is recorded.
const Saved = "Encuesta guardada exitosamente."

type submitFlags struct {
	tool       string
	frequency  int
	quality    int
	improved   string
	difficulty int
}

func newSubmitCmd(a *app) *cobra.Command {
	var f submitFlags
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record one survey response",
		Long: `Submit validates one response and appends it to the survey file.

Example:
  survey submit --tool "Power BI" --frequency 4 --quality 5 --improved Si --difficulty 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSubmit(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.tool, "tool", "", "PREG1: "+types.FieldTool.Question())
	fl.IntVar(&f.frequency, "frequency", 3, "PREG2: "+types.FieldFrequency.Question())
	fl.IntVar(&f.quality, "quality", 3, "PREG3: "+types.FieldQuality.Question())
	fl.StringVar(&f.improved, "improved", string(types.AnswerYes), "PREG4: "+types.FieldImproved.Question())
	fl.IntVar(&f.difficulty, "difficulty", int(types.MinScore), "PREG5: "+types.FieldDifficulty.Question())
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

func (a *app) runSubmit(cmd *cobra.Command, f submitFlags) error {
	tool, err := types.ParseTool(f.tool)
	if err != nil {
		return userError(err)
	}
	improved, err := types.ParseAnswer(f.improved)
	if err != nil {
		return userError(err)
	}
	resp, err := types.NewResponse(tool, f.frequency, f.quality, improved, f.difficulty)
	if err != nil {
		return userError(err)
	}

	if err := a.store().Append(resp); err != nil {
		a.logger.Error("append failed", zap.Error(err))
		return classify(fmt.Errorf("save response: %w", err))
	}
	a.logger.Info("response recorded", zap.String("tool", string(resp.Tool)))

	if a.jsonOutput() {
		return a.emit(cmd, resp)
	}
	fmt.Fprintln(cmd.OutOrStdout(), Saved)
	return nil
}
