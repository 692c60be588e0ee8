// Package mockdata builds the synthetic banking dataset served by the demo:
// a static user registry and the accounts, transactions, cards, bills,
// holdings and notifications derived from it.
package mockdata

import (
	"slices"
	"strconv"
	"strings"

	"apexbank/internal/models"
)

// DefaultGlobalPassword is the single password accepted for every demo user.
const DefaultGlobalPassword = "SEYgeokiRGE@34521"

var registry = []models.UserProfile{
	{
		ID:          "user-001",
		Name:        "Amelia Kinsey",
		FirstName:   "Amelia",
		LastName:    "Kinsey",
		Email:       "amelia.kinsey@coutts.com",
		Phone:       "+44 20 7753 1000",
		Avatar:      "AK",
		MemberSince: "2018",
		Tier:        "Platinum",
		Address: models.Address{
			Street: "440 Strand",
			City:   "London",
			Zip:    "WC2R 0QS",
		},
		TotalBalance: 6000000,
		ValidOTPs:    []string{"345912", "781204", "290847", "563719", "118493"},
	},
	{
		ID:          "user-002",
		Name:        "George Kinsey",
		FirstName:   "George",
		LastName:    "Kinsey",
		Email:       "georgekinsey@gmail.com",
		Phone:       "+44 20 7753 1001",
		Avatar:      "GK",
		MemberSince: "2019",
		Tier:        "Platinum",
		Address: models.Address{
			Street: "1 Cabot Square",
			City:   "London",
			Zip:    "E14 4QJ",
		},
		TotalBalance: 6000000,
		ValidOTPs:    []string{"678943", "412305", "987654", "305821", "750194"},
	},
	{
		ID:          "user-003",
		Name:        "Mary Kinsey",
		FirstName:   "Mary",
		LastName:    "Kinsey",
		Email:       "mary.kinsey@coutts.com",
		Phone:       "+44 20 7753 1002",
		Avatar:      "MK",
		MemberSince: "2020",
		Tier:        "Gold",
		Address: models.Address{
			Street: "25 Belgravia Square",
			City:   "London",
			Zip:    "SW1X 8QB",
		},
		TotalBalance: 5000000,
		ValidOTPs:    []string{"557689", "224466", "890123", "336699", "771144"},
	},
}

// Users returns a copy of the static user registry.
func Users() []models.UserProfile {
	out := make([]models.UserProfile, len(registry))
	for i, u := range registry {
		u.ValidOTPs = slices.Clone(u.ValidOTPs)
		out[i] = u
	}
	return out
}

// userSeq splits "user-002" into its padded suffix "002" and the number 2.
func userSeq(userID string) (string, int) {
	_, suffix, ok := strings.Cut(userID, "-")
	if !ok {
		return userID, 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return suffix, 0
	}
	return suffix, n
}
