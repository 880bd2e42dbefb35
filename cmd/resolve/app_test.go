package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-execution/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const snapshot = `
cash: 1000
prices:
  BTCUSDT: 100
positions:
  - symbol: BTCUSDT
    quantity: 10
    entry_price: 80
`

type ResolveCmdTestSuite struct {
	suite.Suite
	snapshotPath string
	configPath   string
}

func TestResolveCmdSuite(t *testing.T) {
	suite.Run(t, new(ResolveCmdTestSuite))
}

func (suite *ResolveCmdTestSuite) SetupTest() {
	dir := suite.T().TempDir()

	suite.snapshotPath = filepath.Join(dir, "snapshot.yaml")
	suite.Require().NoError(os.WriteFile(suite.snapshotPath, []byte(snapshot), 0644))

	suite.configPath = filepath.Join(dir, "config.yaml")
	suite.Require().NoError(os.WriteFile(suite.configPath, []byte("log_level: error\n"), 0644))
}

func (suite *ResolveCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	base := []string{"resolve", "--config", suite.configPath, "--snapshot", suite.snapshotPath, "--symbol", "BTCUSDT"}
	err := app.Run(context.Background(), append(base, args...))

	return out.String(), err
}

func (suite *ResolveCmdTestSuite) TestAmount() {
	out, err := suite.run("amount", "--side", "BUY", "50%")
	suite.NoError(err)
	suite.Equal("BUY 5 BTCUSDT\n", out)
}

func (suite *ResolveCmdTestSuite) TestTarget() {
	out, err := suite.run("target", "50%")
	suite.NoError(err)
	suite.Equal("SELL 5 BTCUSDT\n", out)

	out, err = suite.run("target", "10")
	suite.NoError(err)
	suite.Equal("no order needed\n", out)
}

func (suite *ResolveCmdTestSuite) TestOffset() {
	out, err := suite.run("offset", "--side", "BUY", "e5%")
	suite.NoError(err)
	suite.Equal("84\n", out)

	out, err = suite.run("offset", "e10")
	suite.NoError(err)
	suite.Equal("90\n", out)

	out, err = suite.run("offset", "--", "-5%")
	suite.NoError(err)
	suite.Equal("95\n", out)
}

func (suite *ResolveCmdTestSuite) TestInvalidSpec() {
	_, err := suite.run("offset", "@-1")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidArgument), "got %v", err)
}

func (suite *ResolveCmdTestSuite) TestInvalidSide() {
	_, err := suite.run("amount", "--side", "HOLD", "1")
	suite.Error(err)
}

func (suite *ResolveCmdTestSuite) TestMissingSnapshot() {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), []string{"resolve", "--symbol", "BTCUSDT", "amount", "1"})
	suite.ErrorContains(err, "--snapshot or --live")
}

func (suite *ResolveCmdTestSuite) TestWatchNeedsLive() {
	_, err := suite.run("watch")
	suite.ErrorContains(err, "--live")
}
