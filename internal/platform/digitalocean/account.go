package digitalocean

import (
	"context"
	"fmt"
	"time"

	"github.com/digitalocean/godo"
)

// Account summarizes the authenticated account.
type Account struct {
	Email        string `json:"email" yaml:"email"`
	UUID         string `json:"uuid" yaml:"uuid"`
	Status       string `json:"status" yaml:"status"`
	DropletLimit int    `json:"droplet_limit" yaml:"droplet_limit"`
}

// Balance is the account's billing position. Amounts are the API's decimal strings.
type Balance struct {
	MonthToDateBalance string    `json:"month_to_date_balance" yaml:"month_to_date_balance"`
	AccountBalance     string    `json:"account_balance" yaml:"account_balance"`
	MonthToDateUsage   string    `json:"month_to_date_usage" yaml:"month_to_date_usage"`
	GeneratedAt        time.Time `json:"generated_at" yaml:"generated_at"`
}

// GetAccount reads the account the credential belongs to. It doubles as the
// cheapest check that the credential is accepted.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var acct *godo.Account
	err := c.read(ctx, "get account", func() error {
		var err error
		acct, _, err = c.client.Account.Get(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Account{
		Email:        acct.Email,
		UUID:         acct.UUID,
		Status:       acct.Status,
		DropletLimit: acct.DropletLimit,
	}, nil
}

// GetBalance reads the account balance.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	var bal *godo.Balance
	err := c.read(ctx, "get balance", func() error {
		var err error
		bal, _, err = c.client.Balance.Get(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Balance{
		MonthToDateBalance: bal.MonthToDateBalance,
		AccountBalance:     bal.AccountBalance,
		MonthToDateUsage:   bal.MonthToDateUsage,
		GeneratedAt:        bal.GeneratedAt,
	}, nil
}

// AssignToProject moves a droplet into the project named projectName.
// It returns ErrProjectNotFound when no project has that name.
func (c *Client) AssignToProject(ctx context.Context, instanceID int, projectName string) error {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return err
	}

	var projectID string
	for _, p := range projects {
		if p.Name == projectName {
			projectID = p.ID
			break
		}
	}
	if projectID == "" {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, projectName)
	}

	urn := (&godo.Droplet{ID: instanceID}).URN()
	_, _, err = c.client.Projects.AssignResources(ctx, projectID, urn)
	return classify(fmt.Sprintf("assign droplet %d to project %s", instanceID, projectName), err)
}
