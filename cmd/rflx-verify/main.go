// Command rflx-verify is a thin demonstration harness: it loads a YAML
// message-graph fixture, builds the model.Message it describes,
// normalizes and verifies it, and prints the resulting diagnostics. It
// is not a concrete-syntax parser/CLI — it never reads ".rflx" source,
// only the fixture format defined here.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/smt"
	"github.com/componolit/rflx-verify/verifier"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rflx-verify <fixture.yaml>")
		os.Exit(2)
	}

	log := logrus.New()

	fixture, err := LoadFixture(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("failed to load fixture")
	}

	msg, err := fixture.BuildMessage()
	if err != nil {
		log.WithError(err).Fatal("failed to build message graph")
	}

	normDiag := model.Normalize(msg)
	logger := diag.NewLogger(log)
	logger.Log(msg.ID.String()+": normalize", normDiag)
	if err := normDiag.Propagate(); err != nil {
		log.WithError(err).Fatal("normalization failed")
	}

	v := verifier.New(&smt.Fake{}, fixture.Proof.Workers, time.Duration(fixture.Proof.TimeoutMS)*time.Millisecond)
	verifyDiag := verifier.Verify(context.Background(), v, msg)
	logger.Log(msg.ID.String()+": verify", verifyDiag)

	if err := verifyDiag.Propagate(); err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	fmt.Println("PROVEN:", msg.ID)
}
