package template

import "fmt"

// catalog builds the full bilingual template set. Positional arguments are
// documented per key; every key carries independently authored fr and en SMS
// bodies. Keep SMS strings short: they are billed per segment on the carrier
// side.
func catalog() map[Key]entry {
	return map[Key]entry{
		// args: childName, date, className
		KeyAbsenceAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s%s absent %s. Contact school if needed.", arg(a, 0), withClass(arg(a, 2)), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s%s absent %s. Contactez école si nécessaire.", arg(a, 0), withClass(arg(a, 2)), arg(a, 1))
				},
			},
			whatsapp: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("⚠️ *Absence Alert*\n\n*Student:* %s\n*Date:* %s\n\nPlease confirm if this is expected or contact school.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("⚠️ *Alerte Absence*\n\n*Étudiant:* %s\n*Date:* %s\n\nVeuillez confirmer si c'est prévu ou contactez école.", arg(a, 0), arg(a, 1))
				},
			},
			email: map[Language]EmailTemplate{
				LangEN: {
					Subject: func(a ...string) string { return fmt.Sprintf("Attendance Update - %s", arg(a, 0)) },
					Body: func(a ...string) string {
						return fmt.Sprintf("Dear Parent/Guardian,\n\nThis is to inform you about your child's attendance:\n\nStudent: %s\nDate: %s\nStatus: absent\n\nIf you have any questions, please contact the school.\n\nBest regards,\nThe EduConnect Team", arg(a, 0), arg(a, 1))
					},
				},
				LangFR: {
					Subject: func(a ...string) string { return fmt.Sprintf("Mise à jour de présence - %s", arg(a, 0)) },
					Body: func(a ...string) string {
						return fmt.Sprintf("Cher Parent/Tuteur,\n\nCeci pour vous informer de la présence de votre enfant:\n\nÉtudiant: %s\nDate: %s\nStatut: absent\n\nSi vous avez des questions, veuillez contacter l'école.\n\nCordialement,\nL'équipe EduConnect", arg(a, 0), arg(a, 1))
					},
				},
			},
			pushTitle: map[Language]string{LangEN: "Absence Alert", LangFR: "Alerte Absence"},
		},

		// args: childName, time, className
		KeyLateArrival: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s%s arrived late at %s.", arg(a, 0), withClass(arg(a, 2)), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s%s arrivé en retard à %s.", arg(a, 0), withClass(arg(a, 2)), arg(a, 1))
				},
			},
		},

		// args: childName, subject, grade
		KeyNewGrade: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: %s grade %s. Well done!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: note %s %s. Bravo!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
			whatsapp: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("📚 *Grade Update*\n\n*Student:* %s\n*Subject:* %s\n*Grade:* %s\n\nView full report in EduConnect app", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("📚 *Mise à jour Note*\n\n*Étudiant:* %s\n*Matière:* %s\n*Note:* %s\n\nVoir rapport complet dans app EduConnect", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, subject, grade
		KeyLowGradeAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: %s %s. Needs support. Contact teacher.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: %s %s. Besoin aide. Contactez prof.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, amount, dueDate
		KeySchoolFeesDue: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: School fees %s due %s. Pay via app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: Frais %s dus %s. Payez via app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, amount, reference
		KeyPaymentConfirmed: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: Payment %s received. Ref: %s. Thank you!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: Paiement %s reçu. Réf: %s. Merci!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: personName, situation
		KeyEmergencyAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("URGENT: %s - %s. Contact school immediately.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("URGENT: %s - %s. Contactez école immédiatement.", arg(a, 0), arg(a, 1))
				},
			},
			pushTitle: map[Language]string{LangEN: "Emergency", LangFR: "Urgence"},
		},

		// args: childName, incident
		KeyMedicalIncident: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: %s. Please collect from school nurse.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: %s. Veuillez venir chercher à infirmerie.", arg(a, 0), arg(a, 1))
				},
			},
		},

		// args: title, date
		KeySchoolAnnouncement: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("School: %s - %s. Check app for details.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("École: %s - %s. Vérifiez app pour détails.", arg(a, 0), arg(a, 1))
				},
			},
		},

		// args: code
		KeyPasswordReset: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("Your EduConnect password reset code: %s. Valid for 10 minutes.", arg(a, 0))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("Votre code EduConnect: %s. Valide 10 minutes.", arg(a, 0))
				},
			},
		},

		// args: childName, subject, dueDate
		KeyHomeworkReminder: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s: %s homework due %s. Check app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s: Devoir %s pour %s. Voir app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, zoneName, time
		KeyZoneEntry: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s entered %s at %s. Safe arrival confirmed.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s est arrivé à %s à %s. Arrivée confirmée.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, zoneName, time
		KeyZoneExit: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s left %s at %s. Track location in app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s a quitté %s à %s. Suivez dans app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, schoolName, time
		KeySchoolArrival: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s arrived at %s at %s. Attendance confirmed.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s arrivé à %s à %s. Présence confirmée.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, schoolName, time
		KeySchoolDeparture: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s left %s at %s. Pickup confirmed.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s a quitté %s à %s. Récupération confirmée.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, time
		KeyHomeArrival: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s arrived home safely at %s.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s est rentré à la maison à %s.", arg(a, 0), arg(a, 1))
				},
			},
		},

		// args: childName, time
		KeyHomeDeparture: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s left home at %s. Journey started.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s a quitté la maison à %s. Trajet commencé.", arg(a, 0), arg(a, 1))
				},
			},
		},

		// args: childName, location, time
		KeyLocationAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("ALERT: %s at unexpected location: %s at %s. Check app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("ALERTE: %s dans lieu inattendu: %s à %s. Voir app.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, speed, location
		KeySpeedAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("ALERT: %s moving at %s km/h near %s. Check safety.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("ALERTE: %s se déplace à %s km/h près %s. Vérifier sécurité.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
		},

		// args: childName, deviceType, batteryLevel
		KeyLowBattery: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s's %s battery: %s%%. Please charge device.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("Batterie %s de %s: %s%%. Rechargez appareil.", arg(a, 1), arg(a, 0), arg(a, 2))
				},
			},
		},

		// args: childName, deviceType, lastSeen
		KeyDeviceOffline: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("%s's %s offline since %s. Check device.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("%s de %s hors ligne depuis %s. Vérifier appareil.", arg(a, 1), arg(a, 0), arg(a, 2))
				},
			},
		},

		// args: childName, deviceType
		KeyGPSDisabled: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("GPS disabled on %s's %s. Please enable location services.", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("GPS désactivé sur %s de %s. Activez localisation.", arg(a, 1), arg(a, 0))
				},
			},
		},

		// args: childName, location, time
		KeyPanicButton: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("EMERGENCY: %s activated panic button at %s, %s. Call immediately!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("URGENCE: %s a activé alarme à %s, %s. Appelez immédiatement!", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
			pushTitle: map[Language]string{LangEN: "Panic Button", LangFR: "Bouton Panique"},
		},

		// args: childName, coordinates, address
		KeySOSLocation: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("SOS: %s needs help at %s (%s). Contact emergency services.", arg(a, 0), arg(a, 2), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("SOS: %s a besoin d'aide à %s (%s). Contactez secours.", arg(a, 0), arg(a, 2), arg(a, 1))
				},
			},
		},

		// args: firstName, lastName, daysLeft, expiryDate, planName
		KeySubscriptionReminder: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("EduConnect: Your subscription expires in %s days. Renew now to continue enjoying our services. Renewal will start when your current subscription ends.", arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("EduConnect: Votre abonnement expire dans %s jours. Renouvelez dès maintenant pour continuer à profiter de nos services. Le renouvellement commencera à la fin de votre abonnement actuel.", arg(a, 2))
				},
			},
			email: map[Language]EmailTemplate{
				LangEN: {
					Subject: func(a ...string) string { return "EduConnect Subscription Expiration Reminder" },
					Body: func(a ...string) string {
						return fmt.Sprintf("Hello %s %s,\n\nYour EduConnect subscription expires in %s days (on %s).\n\nTo continue benefiting from our educational services, we recommend renewing your subscription now.\n\nIMPORTANT: If you renew before expiration, your new subscription will automatically start at the end of your current period. You won't lose any days!\n\nCurrent plan: %s\nExpiration date: %s\n\nBest regards,\nThe EduConnect Team",
							arg(a, 0), arg(a, 1), arg(a, 2), arg(a, 3), arg(a, 4), arg(a, 3))
					},
				},
				LangFR: {
					Subject: func(a ...string) string { return "Rappel d'expiration d'abonnement EduConnect" },
					Body: func(a ...string) string {
						return fmt.Sprintf("Bonjour %s %s,\n\nVotre abonnement EduConnect expire dans %s jours (le %s).\n\nPour continuer à bénéficier de nos services éducatifs, nous vous recommandons de renouveler votre abonnement dès maintenant.\n\nIMPORTANT: Si vous renouvelez avant l'expiration, votre nouvel abonnement commencera automatiquement à la fin de votre période actuelle. Vous ne perdez aucun jour!\n\nPlan actuel: %s\nDate d'expiration: %s\n\nCordialement,\nL'équipe EduConnect",
							arg(a, 0), arg(a, 1), arg(a, 2), arg(a, 3), arg(a, 4), arg(a, 3))
					},
				},
			},
			pushTitle: map[Language]string{LangEN: "Subscription Reminder", LangFR: "Rappel d'abonnement"},
		},

		// args: eventType, message, time
		KeyCriticalAlert: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("EDUCONNECT ALERT: %s - %s at %s. Check emails for details.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("ALERTE EDUCONNECT: %s - %s à %s. Voir emails pour détails.", arg(a, 0), arg(a, 1), arg(a, 2))
				},
			},
			email: map[Language]EmailTemplate{
				LangEN: {
					Subject: func(a ...string) string {
						return fmt.Sprintf("EDUCONNECT CRITICAL ALERT - %s", arg(a, 0))
					},
					Body: func(a ...string) string {
						return fmt.Sprintf("EDUCONNECT CRITICAL ALERT\n\nType: %s\nSeverity: %s\nTime: %s\n\nMessage: %s\n\nDetails:\n%s\n\nSource: %s\n\nThis is an automated alert from the EduConnect platform monitoring system.\nPlease investigate immediately.\n\nBest regards,\nEduConnect Monitoring System",
							arg(a, 0), arg(a, 1), arg(a, 2), arg(a, 3), arg(a, 4), arg(a, 5))
					},
				},
				LangFR: {
					Subject: func(a ...string) string {
						return fmt.Sprintf("ALERTE CRITIQUE EDUCONNECT - %s", arg(a, 0))
					},
					Body: func(a ...string) string {
						return fmt.Sprintf("ALERTE CRITIQUE EDUCONNECT\n\nType: %s\nGravité: %s\nHeure: %s\n\nMessage: %s\n\nDétails:\n%s\n\nSource: %s\n\nAlerte automatique du système de surveillance EduConnect.\nVeuillez enquêter immédiatement.\n\nCordialement,\nSystème de surveillance EduConnect",
							arg(a, 0), arg(a, 1), arg(a, 2), arg(a, 3), arg(a, 4), arg(a, 5))
					},
				},
			},
			pushTitle: map[Language]string{LangEN: "Critical Alert", LangFR: "Alerte Critique"},
		},

		// args: userName, time
		KeyCommercialConnection: {
			sms: map[Language]FormatFunc{
				LangEN: func(a ...string) string {
					return fmt.Sprintf("EDUCONNECT: Commercial user %s connected at %s", arg(a, 0), arg(a, 1))
				},
				LangFR: func(a ...string) string {
					return fmt.Sprintf("EDUCONNECT: Utilisateur commercial %s connecté à %s", arg(a, 0), arg(a, 1))
				},
			},
			pushTitle: map[Language]string{LangEN: "Commercial Connection Alert", LangFR: "Alerte Connexion Commerciale"},
		},
	}
}

func withClass(className string) string {
	if className == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", className)
}
