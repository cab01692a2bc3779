package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// Multipart upload helper
func uploadFile(url, fieldName, fileName string, content []byte, fields map[string]string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, nil, err
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req, err := http.NewRequest("POST", baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(respBody []byte) map[string]interface{} {
	var envelope map[string]interface{}
	json.Unmarshal(respBody, &envelope)
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	color.Cyan("🚀 Starting Knowledge Base API Test\n")

	// 1. Create Session
	color.Yellow("\n1. Create Session")
	sessionReq := map[string]interface{}{
		"name": "API Test Session",
	}
	resp, body, err := sendRequest("POST", "/session/v1", sessionReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionID string
	if data := dataField(body); data != nil {
		if id, ok := data["id"].(string); ok {
			sessionID = id
			fmt.Printf("Created Session ID: %s\n", sessionID)
		}
	}
	if sessionID == "" {
		color.Red("Failed to create session, aborting")
		os.Exit(1)
	}

	// 2. Upload Document
	color.Yellow("\n2. Upload Document (test.txt)")
	docContent := []byte("Quarterly report.\n\nRevenue grew 14 percent year over year. " +
		"The main driver was the enterprise segment. Churn stayed below 2 percent.")
	resp, body, err = uploadFile("/upload/v1", "file", "test.txt", docContent, map[string]string{
		"session_id": sessionID,
		"model":      "default",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var uploadResp map[string]interface{}
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	// 3. List Documents
	color.Yellow("\n3. List Documents")
	resp, body, err = sendRequest("GET", "/document/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var listResp map[string]interface{}
		json.Unmarshal(body, &listResp)
		prettyPrint(listResp)
	}

	// 4. Query the Knowledge Base
	color.Yellow("\n4. Query: 'How did revenue develop?'")
	queryReq := map[string]interface{}{
		"action":     "query",
		"session_id": sessionID,
		"question":   "How did revenue develop?",
		"model":      "default",
	}
	resp, body, err = sendRequest("POST", "/agent/v1", queryReq)
	var rawAnswer string
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			if answer, ok := data["answer"].(string); ok {
				rawAnswer = answer
				fmt.Printf("Answer: %s\n", answer)
			}
			if conf, ok := data["confidence"].(float64); ok {
				fmt.Printf("Confidence: %.2f\n", conf)
			}
		}
	}

	// 5. Structure the Raw Answer
	if rawAnswer != "" {
		color.Yellow("\n5. Structure Raw Answer")
		structureReq := map[string]interface{}{
			"action":     "structure",
			"session_id": sessionID,
			"question":   "How did revenue develop?",
			"raw_answer": rawAnswer,
		}
		resp, body, err = sendRequest("POST", "/agent/v1", structureReq)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var structResp map[string]interface{}
			json.Unmarshal(body, &structResp)
			prettyPrint(structResp)
		}
	}

	// 6. Session Messages
	color.Yellow("\n6. List Session Messages")
	resp, body, err = sendRequest("GET", "/session/v1/"+sessionID+"/messages", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var msgResp map[string]interface{}
		json.Unmarshal(body, &msgResp)
		prettyPrint(msgResp)
	}

	// 7. Search
	color.Yellow("\n7. Search Documents: 'revenue'")
	resp, body, err = sendRequest("GET", "/search/v1?q=revenue", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var searchResp map[string]interface{}
		json.Unmarshal(body, &searchResp)
		prettyPrint(searchResp)
	}

	// 8. Activity Feed
	color.Yellow("\n8. Activity Feed")
	resp, body, err = sendRequest("GET", "/activity/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var actResp map[string]interface{}
		json.Unmarshal(body, &actResp)
		prettyPrint(actResp)
	}

	color.Cyan("\n✅ Test Flow Complete")
}
