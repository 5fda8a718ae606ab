package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	approval "github.com/nivschuman/ElectionResults/internal/approval"
	"github.com/nivschuman/ElectionResults/internal/identity"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

var submitRequest = &approval.SubmitRequest{}

var (
	candidateFlags []string
	signRole       string
	stationsOffset int
	stationsLimit  int
)

func init() {
	addKeyFlag(submitCmd)
	submitCmd.Flags().StringVar(&submitRequest.StationId, "station", "", "polling station id")
	submitCmd.Flags().StringVar(&submitRequest.ElectionId, "election", "", "election id")
	submitCmd.Flags().StringVar(&submitRequest.ResultHash, "result-hash", "", "hash of the full result document")
	submitCmd.Flags().StringVar(&submitRequest.ResultDataUrl, "result-url", "", "location of the full result document")
	submitCmd.Flags().Uint64Var(&submitRequest.TotalVotes, "total", 0, "declared total of votes cast")
	submitCmd.Flags().StringArrayVar(&candidateFlags, "candidate", nil, "candidate tally as id=votes, repeat in ballot order")
	submitCmd.MarkFlagRequired("station")
	rootCmd.AddCommand(submitCmd)

	addKeyFlag(signCmd)
	signCmd.Flags().StringVar(&signRole, "role", "", "agent or observer")
	signCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(signCmd)

	rootCmd.AddCommand(statusCmd)

	stationsCmd.Flags().IntVar(&stationsOffset, "offset", 0, "number of stations to skip")
	stationsCmd.Flags().IntVar(&stationsLimit, "limit", -1, "maximum number of stations, -1 for all")
	rootCmd.AddCommand(stationsCmd)
}

// parseCandidates splits id=votes pairs keeping their order.
func parseCandidates(values []string) ([]string, []uint64, error) {
	candidateIds := make([]string, 0, len(values))
	votes := make([]uint64, 0, len(values))

	for _, value := range values {
		candidateId, count, ok := strings.Cut(value, "=")
		if !ok || candidateId == "" {
			return nil, nil, errors.Errorf("candidate %q is not in id=votes form", value)
		}

		parsed, err := strconv.ParseUint(count, 10, 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "votes of candidate %s", candidateId)
		}

		candidateIds = append(candidateIds, candidateId)
		votes = append(votes, parsed)
	}

	return candidateIds, votes, nil
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit or revise the result of a polling station",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		candidateIds, votes, err := parseCandidates(candidateFlags)
		if err != nil {
			return err
		}
		submitRequest.CandidateIds = candidateIds
		submitRequest.Votes = votes

		payload, err := json.Marshal(submitRequest)
		if err != nil {
			return err
		}

		callerId, err := authenticate(identity.ActionSubmit, submitRequest.StationId, payload)
		if err != nil {
			return err
		}

		record, err := node.Machine.Submit(callerId, submitRequest)
		if err != nil {
			return err
		}

		printRecord(cmd, record)
		return nil
	},
}

var signCmd = &cobra.Command{
	Use:   "sign <station-id>",
	Short: "Approve a submitted result as agent or observer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(signRole)
		if err != nil {
			return err
		}

		var action identity.Action
		switch role {
		case models.RoleAgent:
			action = identity.ActionSignAgent
		case models.RoleObserver:
			action = identity.ActionSignObserver
		default:
			return errors.Errorf("a %s does not sign, it submits", role)
		}

		callerId, err := authenticate(action, args[0], nil)
		if err != nil {
			return err
		}

		var record *models.ResultRecord
		if role == models.RoleAgent {
			record, err = node.Machine.SignAsAgent(callerId, args[0])
		} else {
			record, err = node.Machine.SignAsObserver(callerId, args[0])
		}

		if err != nil {
			return err
		}

		printRecord(cmd, record)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <station-id>",
	Short: "Show the record of a polling station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := node.Machine.GetRecord(args[0])
		if err != nil {
			return err
		}

		printRecord(cmd, record)
		return nil
	},
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List stations in submission order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := node.Machine.GetStationCount()
		if err != nil {
			return err
		}

		stations, err := node.Machine.GetStations(stationsOffset, stationsLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STATION\tSIGNATURES\tFINALIZED")
		for _, stationId := range stations {
			status, err := node.Machine.GetSignatureStatus(stationId)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%t\n", stationId, signatureMarks(status), status.Finalized)
		}
		w.Flush()

		fmt.Fprintf(cmd.OutOrStdout(), "%s stations\n", humanize.Comma(count))
		return nil
	},
}

func signatureMarks(status models.SignatureStatus) string {
	marks := []byte("---")
	if status.SubmitterSigned {
		marks[0] = 'S'
	}
	if status.AgentSigned {
		marks[1] = 'A'
	}
	if status.ObserverSigned {
		marks[2] = 'O'
	}
	return string(marks)
}

func formatVotes(votes uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(votes))
}

func printRecord(cmd *cobra.Command, record *models.ResultRecord) {
	out := cmd.OutOrStdout()
	details := record.Details()

	fmt.Fprintf(out, "station:     %s\n", details.StationId)
	fmt.Fprintf(out, "election:    %s\n", details.ElectionId)
	fmt.Fprintf(out, "result hash: %s\n", details.ResultHash)
	fmt.Fprintf(out, "result url:  %s\n", details.ResultDataUrl)
	fmt.Fprintf(out, "total votes: %s\n", formatVotes(details.TotalVotes))
	fmt.Fprintf(out, "updated:     %s\n", humanize.Time(time.Unix(0, details.UpdatedAt)))
	fmt.Fprintf(out, "finalized:   %t (%d of 3 signatures)\n", details.Finalized, record.SignatureCount())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nCANDIDATE\tVOTES")
	for _, candidateId := range record.Candidates.Keys() {
		votes, _ := record.Candidates.Get(candidateId)
		fmt.Fprintf(w, "%s\t%s\n", candidateId, formatVotes(votes))
	}

	fmt.Fprintln(w, "\nROLE\tSIGNER\tAFFILIATION\tSIGNED")
	for _, role := range models.Roles {
		slot, _ := record.Slot(role)
		if !slot.Signed {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", role)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", role, shortId(slot.SignerId), slot.Affiliation, humanize.Time(time.Unix(0, slot.SignedAt)))
	}
	w.Flush()
}
