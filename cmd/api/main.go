// @title           HR Policy Gateway API
// @version         1.0
// @description     역할 기반 권한으로 HR 사실과 회사 정책을 결합해 답하는 질문 게이트웨이
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " 뒤에 JWT 토큰을 입력하세요.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrgw",
	Short: "HR/policy question gateway",
	Long: `hrgw answers employee questions by combining role-filtered HR profile
facts with retrieved company policy.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
